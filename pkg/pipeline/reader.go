package pipeline

import "io"

// ReadLoop is the single reader goroutine feeding a channel (spec §5: "the
// event loop selects over many channels cooperatively; blocking syscalls
// are forbidden inside handlers" — the blocking read lives here, off the
// loop, and every chunk it reads is handed to the loop via FireRead).
//
// It returns once r.Read fails (including io.EOF), having already closed
// the channel.
func ReadLoop(ch *Channel, r io.Reader, bufSize int) {
	buf := make([]byte, bufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch.FireRead(chunk)
		}
		if err != nil {
			if err == io.EOF {
				ch.Close(nil)
			} else {
				ch.FireError(err)
				ch.Close(err)
			}
			return
		}
	}
}
