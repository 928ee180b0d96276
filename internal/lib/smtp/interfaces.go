// Package smtp provides the outgoing-mail transport used by the notifier.
package smtp

import "io"

// Client is the subset of *smtp.Client the sender needs.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface abstracts transport creation for tests.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
