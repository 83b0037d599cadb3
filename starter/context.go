package starter

// Context is the launch primitive. Start performs the transition to the
// message's target.
type Context interface {
	Start(m *Message)
}

// ContextFunc adapts a function to the Context interface.
type ContextFunc func(m *Message)

// Start calls f(m).
func (f ContextFunc) Start(m *Message) { f(m) }

// Recorder is a Context that keeps every started message in order.
type Recorder struct {
	Started []*Message
}

// Start records m.
func (r *Recorder) Start(m *Message) {
	r.Started = append(r.Started, m)
}

// Last returns the most recently started message, or nil.
func (r *Recorder) Last() *Message {
	if len(r.Started) == 0 {
		return nil
	}

	return r.Started[len(r.Started)-1]
}
