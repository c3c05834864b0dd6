// Package frame cuts a sample stream into overlapping analysis frames.
//
// Each call to Process appends the input block to a per-channel history. When
// hop samples have arrived since the last frame, the most recent frame-size
// samples are copied to the output and the output is marked triggered; other
// calls produce an untriggered output, which downstream stages pass through
// without processing. Frames before the first frame-size samples are padded
// with zeros at the start.
package frame
