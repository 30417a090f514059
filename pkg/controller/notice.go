package controller

import "log"

// Level grades a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// Notice is a user-visible message raised by a transition.
type Notice struct {
	Level Level
	Text  string
	// Err is set for warnings and errors.
	Err error
}

// Notifier presents notices. Implementations are called from the event loop
// and must not block.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

type discard struct{}

func (discard) Notify(Notice) {}

// Notices records every notice it receives; the zero value is ready to use.
type Notices struct {
	List []Notice
}

// Notify implements Notifier.
func (n *Notices) Notify(notice Notice) { n.List = append(n.List, notice) }

// Last returns the most recent notice.
func (n *Notices) Last() (Notice, bool) {
	if len(n.List) == 0 {
		return Notice{}, false
	}
	return n.List[len(n.List)-1], true
}

func (c *Controller) notify(level Level, text string, err error) {
	if err != nil {
		log.Printf("%s: %s: %v", c.schema.Name, text, err)
	}
	c.notifier.Notify(Notice{Level: level, Text: text, Err: err})
}
