package middleware

import (
	tele "gopkg.in/telebot.v4"
)

// metricsContext wraps tele.Context to count replies sent while handling an update.
type metricsContext struct{ tele.Context }

func (m metricsContext) incMessages() {
	n, _ := m.Get("messages").(int)
	m.Set("messages", n+1)
}

// Send proxies tele.Context.Send while updating the message counter.
func (m metricsContext) Send(what interface{}, opts ...interface{}) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.incMessages()
	}
	return err
}

// Reply proxies tele.Context.Reply while updating the message counter.
func (m metricsContext) Reply(what interface{}, opts ...interface{}) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.incMessages()
	}
	return err
}

// MessageMetricsMiddleware instruments context to count replies per update.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set("messages", 0)
		return next(metricsContext{Context: c})
	}
}

// GetCounters reads the reply count from context.
func GetCounters(c tele.Context) int {
	n, _ := c.Get("messages").(int)
	return n
}
