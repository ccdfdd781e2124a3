package services

// EventPublisher publishes catalog change events to a message broker.
// Implementations live in pkg/rabbitmq; services treat a nil publisher as
// "events disabled" and publishing failures are logged, never surfaced to
// the API caller.
type EventPublisher interface {
	PublishCatalogEvent(eventType string, payload map[string]interface{}) error
}

const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
)
