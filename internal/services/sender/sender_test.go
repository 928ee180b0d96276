package sender

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/city-classifieds/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSenderService_SendNotificationEmail(t *testing.T) {
	eventBody := []byte(`{"user_uid":"uid-1","email":"jan@example.com","full_name":"Jan Kowalski",` +
		`"type":"message","title":"Nowa wiadomość","content":"Anna wysłała Ci wiadomość","link":"/messages"}`)

	tests := []struct {
		name          string
		body          []byte
		setupMocks    func(*MockTransport)
		expectedError bool
		errorMessage  string
	}{
		{
			name: "success - notification delivered",
			body: eventBody,
			setupMocks: func(t *MockTransport) {
				mockClient := new(MockSMTPClient)
				mockWriter := new(MockSMTPWriter)

				t.On("GetSMTPUser").Return("noreply@example.com")
				t.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "noreply@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "jan@example.com").Return(nil).Once()
				mockClient.On("Data").Return(mockWriter, nil).Once()
				mockWriter.On("Write", mock.MatchedBy(func(p []byte) bool {
					msg := string(p)
					return strings.Contains(msg, "Subject: Nowa wiadomość") &&
						strings.Contains(msg, "Dzień dobry, Jan Kowalski!") &&
						strings.Contains(msg, "Anna wysłała Ci wiadomość") &&
						strings.Contains(msg, "Szczegóły: /messages")
				})).Return(100, nil).Once()
				mockWriter.On("Close").Return(nil).Once()
				mockClient.On("Quit").Return(nil).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			expectedError: false,
		},
		{
			name: "invalid JSON",
			body: []byte(`invalid json`),
			setupMocks: func(_ *MockTransport) {
				// No transport calls expected for invalid JSON
			},
			expectedError: true,
			errorMessage:  "error unmarshalling message",
		},
		{
			name: "event without e-mail is skipped",
			body: []byte(`{"user_uid":"uid-1","email":"","type":"system","title":"t","content":"c"}`),
			setupMocks: func(_ *MockTransport) {
				// No transport calls expected without a recipient
			},
			expectedError: false,
		},
		{
			name: "SMTP connection error",
			body: eventBody,
			setupMocks: func(t *MockTransport) {
				t.On("GetSMTPUser").Return("noreply@example.com")
				t.On("Connect").Return(nil, errors.New("connection error")).Once()
			},
			expectedError: true,
			errorMessage:  "connection error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			service := NewSenderService(transport, newNoopLogger())

			tt.setupMocks(transport)

			err := service.SendNotificationEmail(tt.body)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMessage)
			} else {
				assert.NoError(t, err)
			}

			transport.AssertExpectations(t)
		})
	}
}

func TestSenderService_SMTPErrorHandling(t *testing.T) {
	eventBody := []byte(`{"user_uid":"uid-1","email":"jan@example.com","full_name":"Jan",` +
		`"type":"like","title":"Nowe polubienie","content":"Ktoś polubił Twoje ogłoszenie"}`)

	tests := []struct {
		name         string
		setupMocks   func(*MockTransport)
		errorMessage string
	}{
		{
			name: "SMTP Mail error",
			setupMocks: func(t *MockTransport) {
				mockClient := new(MockSMTPClient)

				t.On("GetSMTPUser").Return("noreply@example.com")
				t.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "noreply@example.com").Return(errors.New("mail error")).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			errorMessage: "mail error",
		},
		{
			name: "SMTP Rcpt error",
			setupMocks: func(t *MockTransport) {
				mockClient := new(MockSMTPClient)

				t.On("GetSMTPUser").Return("noreply@example.com")
				t.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "noreply@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "jan@example.com").Return(errors.New("rcpt error")).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			errorMessage: "rcpt error",
		},
		{
			name: "SMTP Data error",
			setupMocks: func(t *MockTransport) {
				mockClient := new(MockSMTPClient)

				t.On("GetSMTPUser").Return("noreply@example.com")
				t.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "noreply@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "jan@example.com").Return(nil).Once()
				mockClient.On("Data").Return(nil, errors.New("data error")).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			errorMessage: "data error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			service := NewSenderService(transport, newNoopLogger())

			tt.setupMocks(transport)

			err := service.SendNotificationEmail(eventBody)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMessage)

			transport.AssertExpectations(t)
		})
	}
}
