package notify

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/abd-Kabir/cargo-bot/internal/config"
	"github.com/abd-Kabir/cargo-bot/internal/model"
)

// TelegramNotifier pushes settlement outcomes to the customer's bot chat.
// Delivery is best effort: the service never fails a request because the
// bot API is down.
type TelegramNotifier struct {
	client    *resty.Client
	autoToken string
	aviaToken string
	log       zerolog.Logger
}

func NewTelegramNotifier(cfg config.BotConfig, log zerolog.Logger) *TelegramNotifier {
	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second)
	return &TelegramNotifier{
		client:    client,
		autoToken: cfg.AutoToken,
		aviaToken: cfg.AviaToken,
		log:       log,
	}
}

func (n *TelegramNotifier) PaymentResolved(customer *model.Customer, payment *model.Payment) {
	if customer == nil || payment == nil || customer.TgID == nil {
		return
	}

	token := n.autoToken
	if customer.UserType == model.UserTypeAvia {
		token = n.aviaToken
	}
	if token == "" {
		return
	}

	resp, err := n.client.R().
		SetBody(map[string]string{
			"chat_id": *customer.TgID,
			"text":    paymentMessage(customer.Language, payment),
		}).
		Post(fmt.Sprintf("/bot%s/sendMessage", token))
	if err != nil {
		n.log.Warn().Err(err).Str("customer", customer.FullCode()).Msg("bot notification failed")
		return
	}
	if resp.StatusCode() != http.StatusOK {
		n.log.Warn().
			Int("status", resp.StatusCode()).
			Str("customer", customer.FullCode()).
			Msg("bot notification rejected")
	}
}

func paymentMessage(language string, payment *model.Payment) string {
	approved := payment.Status != nil && *payment.Status == model.PaymentSuccessful

	if language == "uz" {
		if approved {
			return fmt.Sprintf("To'lovingiz qabul qilindi: %s", payment.PaidAmount.StringFixed(2))
		}
		reason := ""
		if payment.Comment != nil {
			reason = "\nSabab: " + *payment.Comment
		}
		return "To'lovingiz rad etildi." + reason
	}

	if approved {
		return fmt.Sprintf("Ваш платёж принят: %s", payment.PaidAmount.StringFixed(2))
	}
	reason := ""
	if payment.Comment != nil {
		reason = "\nПричина: " + *payment.Comment
	}
	return "Ваш платёж отклонён." + reason
}
