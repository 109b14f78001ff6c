// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package protocol implements the payload masking clause of the WebSocket
// wire protocol (RFC 6455 section 5.3). Frame layout, handshake and opcode
// handling belong to the surrounding protocol layer.
package protocol
