package main

import (
	"fmt"
	"io"
	"sync"
)

// printer shows editor notifications on the terminal. Background order
// writes call it from worker goroutines.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) Success(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "✓ %s\n", msg)
}

func (p *printer) Error(msg string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		fmt.Fprintf(p.out, "✗ %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(p.out, "✗ %s\n", msg)
}
