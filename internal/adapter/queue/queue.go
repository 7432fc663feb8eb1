package queue

// MessageQueue carries work-order and pipeline events between the
// analytics service and downstream consumers (maintenance tooling,
// dashboards). Subjects are dot-separated event names, e.g.
// "workorder.created".
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
