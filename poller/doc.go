// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package poller wraps the kernel readiness-notification table behind a
// single handle with a unified control operation and a bounded wait batch.
// Linux epoll(7) is the only backend; other mechanisms such as kqueue are a
// future extension.
package poller
