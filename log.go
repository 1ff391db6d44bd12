// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import "log/slog"

// levelTrace matches the trace level of the command line tool's logger.
const levelTrace = slog.LevelDebug - 4

var discard = slog.New(slog.DiscardHandler)
