// Package progress lets long running operations say what they are
// doing, without caring whether anyone is listening.
package progress

import (
	"io"
	"log"
	"sync"

	"github.com/cheggaaa/pb/v3"
)

// An Observer is told about each step of an operation.
type Observer interface {
	OnProgress(msg string)
}

// Nop ignores everything.
type Nop struct{}

func (Nop) OnProgress(string) {}

// OrNop returns obs, or Nop if obs is nil.
func OrNop(obs Observer) Observer {
	if obs == nil {
		return Nop{}
	}
	return obs
}

// Func lets a plain function be an Observer.
type Func func(msg string)

func (f Func) OnProgress(msg string) { f(msg) }

// Log writes each message to a logger.
type Log struct {
	L *log.Logger
}

func (l Log) OnProgress(msg string) { l.L.Println(msg) }

// Bar is a progress bar that moves on one step per message. The
// message is shown in front of the bar.
type Bar struct {
	mu  sync.Mutex
	bar *pb.ProgressBar
}

// NewBar starts a bar for total steps, drawn on w.
func NewBar(total int, w io.Writer) *Bar {
	bar := pb.Full.New(total)
	bar.SetWriter(w)
	bar.Start()
	return &Bar{bar: bar}
}

func (b *Bar) OnProgress(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar.Set("prefix", msg+" ")
	b.bar.Increment()
}

// Finish stops the bar.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar.Finish()
}

// Count counts messages. It is mostly for tests.
type Count struct {
	mu   sync.Mutex
	Msgs []string
}

func (c *Count) OnProgress(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Msgs = append(c.Msgs, msg)
}

// N is the number of messages so far.
func (c *Count) N() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Msgs)
}
