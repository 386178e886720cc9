package hostbridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// maxLineSize bounds a single request line
const maxLineSize = 1 << 20

// Serve reads requests from r until EOF or ctx is done and writes one
// response per request to w.
func (b *Bridge) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	bw := bufio.NewWriter(w)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("error reading request: %w", err)
					}
				default:
				}
				return nil
			}
			if line == "" {
				continue
			}
			if _, err := bw.WriteString(b.Handle(line) + "\n"); err != nil {
				return fmt.Errorf("error writing response: %w", err)
			}
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("error writing response: %w", err)
			}
		}
	}
}
