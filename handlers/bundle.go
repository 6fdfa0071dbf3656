package handlers

// HandlerBundle groups every endpoint handler the router mounts.
type HandlerBundle struct {
	Auth    *AuthHandler
	Booking *BookingHandler
	Content *ContentHandler
	Inquiry *InquiryHandler
	Admin   *AdminHandler
	Health  *HealthHandler
}
