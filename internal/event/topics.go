package event

// Well-known topics published by the input manager.
const (
	// TopicAction is the wildcard topic receiving every action instance.
	TopicAction = "action"

	// TopicContextChanged carries a ContextChange payload on every
	// context switch.
	TopicContextChanged = "context:changed"
)

// ActionTopic returns the name-scoped topic for one action.
func ActionTopic(name string) string {
	return TopicAction + ":" + name
}

// ContextChange is the payload published on TopicContextChanged.
type ContextChange struct {
	// From is the previously active context; empty when none was active.
	From string

	// To is the newly active context.
	To string
}
