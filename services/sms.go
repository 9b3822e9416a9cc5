package services

import (
	"fmt"

	"classtrack_go/config"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SmsSender delivers one text message to one phone number. Delivery is
// best-effort throughout the system: callers log failures and move on, the
// record of truth is always the database row, not the notification.
type SmsSender interface {
	SendSms(toPhoneNumber, message string) error
}

// TwilioSmsService sends SMS through the Twilio REST API
type TwilioSmsService struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioSmsService creates a Twilio-backed sender from config
func NewTwilioSmsService() *TwilioSmsService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AppConfig.TwilioAccountSID,
		Password: config.AppConfig.TwilioAuthToken,
	})
	return &TwilioSmsService{
		client:     client,
		fromNumber: config.AppConfig.TwilioFromNumber,
	}
}

func (s *TwilioSmsService) SendSms(toPhoneNumber, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toPhoneNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s failed: %w", toPhoneNumber, err)
	}

	logrus.WithField("recipient", toPhoneNumber).Info("SMS sent")
	return nil
}

// MockSmsService logs the message instead of sending it. Used whenever
// SMS_ENABLED is false, including all local development.
type MockSmsService struct{}

func (s *MockSmsService) SendSms(toPhoneNumber, message string) error {
	logrus.WithFields(logrus.Fields{
		"recipient": toPhoneNumber,
		"message":   message,
	}).Info("MOCK SMS SENT")
	return nil
}

// NewSmsSender picks the gateway implementation based on config
func NewSmsSender() SmsSender {
	if config.AppConfig.SmsEnabled {
		return NewTwilioSmsService()
	}
	return &MockSmsService{}
}
