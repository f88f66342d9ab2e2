package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	MaterialOrders() MaterialOrderRepository
	FinanceOrders() FinanceOrderRepository
	QualificationOrders() QualificationOrderRepository
	RecourseOrders() RecourseOrderRepository
	Classifications() ClassificationRepository
	Materials() MaterialRepository
	Notifications() NotificationRepository
	Outbox() OutboxRepository
	Analytics() AnalyticsRepository
}
