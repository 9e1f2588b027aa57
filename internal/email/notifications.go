package email

import (
	"fmt"

	"foodgram/internal/config"
	"foodgram/internal/models"
)

// Notifier sends email notifications for subscription events.
type Notifier struct {
	service *Service
	cfg     *config.Config
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service: NewService(cfg),
		cfg:     cfg,
	}
}

// NotifyNewSubscriber tells an author that someone subscribed to their recipes.
func (n *Notifier) NotifyNewSubscriber(author, subscriber *models.User) {
	if !n.service.IsEnabled() || author.Email == "" {
		return
	}

	subject, body := newSubscriberMessage(author, subscriber, n.cfg.BaseURL)
	n.service.SendAsync([]string{author.Email}, subject, body)
}

// newSubscriberMessage builds the new-subscriber notification text.
func newSubscriberMessage(author, subscriber *models.User, baseURL string) (subject, body string) {
	name := subscriber.Username
	if name == "" {
		name = subscriber.Email
	}

	subject = fmt.Sprintf("%s subscribed to your recipes", name)
	body = fmt.Sprintf(
		"Hi %s,\n\n%s is now following your recipes.\n\n%s\n",
		author.FirstName, name, baseURL,
	)
	return subject, body
}
