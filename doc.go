// Copyright 2019 Aleksandr Demakin. All rights reserved.

// Package posixmq provides access to POSIX message queues.
//
// POSIX message queues are like pipes, but message-oriented, which makes
// them safe to read by multiple processes. Messages are sorted by an
// additional priority parameter. Queues live in their own flat namespace,
// separate from the file system, although normal file permissions still
// apply. See man mq_overview(7) for a longer introduction.
//
// The package talks to the kernel directly instead of going through libc,
// so the queue descriptor is a plain file descriptor on every supported
// platform, usable with Dup, close-on-exec control and readiness polling.
// Supported platforms are Linux and FreeBSD; the package does not compile
// elsewhere.
//
// Portability caveats, documented rather than validated here:
//
//	                    Linux   FreeBSD   NetBSD   DragonFly
//	max priority        32767   63        31       31
//	default capacity    10      10        32       32
//	default msg length  8192    1024      992      992
//	empty messages      yes     yes       no       no
//
// On Linux the queues and their permissions can be inspected under
// /dev/mqueue, and the defaults and ceilings are configurable via
// /proc/sys/fs/mqueue. The kernel can be built without mq support
// entirely, in which case every call fails. On FreeBSD the mqueuefs
// kernel module must be loaded first (kldload mqueuefs).
//
// Queues persist until they are unlinked or the system reboots, so
// programs which create queues should normally Unlink them as well.
package posixmq
