package billing

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Backend response codes. Anything not listed maps to a miscellaneous error.
const (
	codeSuccess             = 0
	codeSubscriptionMissing = 1
	codePropertyMissing     = 3
	codeInsufficientCredit  = 5
	codeExpiredReservation  = 7
)

// Client talks to the billing service over its XML-over-HTTP endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a billing client bounded by the given per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		panic("billing base URL is required")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	XMLName xml.Name   `xml:"Request"`
	Action  string     `xml:"Action"`
	Params  []rpcParam `xml:"Param"`
}

type rpcParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type rpcResponse struct {
	XMLName xml.Name `xml:"Response"`
	Code    int      `xml:"Code"`
	Value   string   `xml:"Value"`
}

// call posts one action envelope and returns the response value. Non-zero
// backend codes become BackendError; transport failures become unavailable.
func (c *Client) call(ctx context.Context, action string, params ...rpcParam) (string, error) {
	body, err := xml.Marshal(rpcRequest{Action: action, Params: params})
	if err != nil {
		return "", fmt.Errorf("billing %s: encode request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("billing %s: build request: %w", action, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &BackendError{Op: action, Code: -1, Outcome: OutcomeUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &BackendError{Op: action, Code: resp.StatusCode, Outcome: OutcomeUnavailable}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Op: action, Code: -1, Outcome: OutcomeUnavailable}
	}

	var rpc rpcResponse
	if err := xml.Unmarshal(raw, &rpc); err != nil {
		return "", &BackendError{Op: action, Code: -1, Outcome: OutcomeUnavailable}
	}

	if rpc.Code != codeSuccess {
		return "", &BackendError{Op: action, Code: rpc.Code, Outcome: mapOutcome(rpc.Code)}
	}
	return rpc.Value, nil
}

func mapOutcome(code int) Outcome {
	switch code {
	case codeSuccess:
		return OutcomeSuccess
	case codeSubscriptionMissing:
		return OutcomeSubscriptionNotFound
	case codePropertyMissing:
		return OutcomePropertyNotFound
	case codeInsufficientCredit:
		return OutcomeInsufficientCredit
	case codeExpiredReservation:
		return OutcomeExpiredReservation
	default:
		return OutcomeMiscellaneous
	}
}

func (c *Client) GetSubscriptionType(ctx context.Context, msisdn string) (string, error) {
	return c.call(ctx, "GetSubscriptionType", rpcParam{Name: "msisdn", Value: msisdn})
}

func (c *Client) GetBlockStatus(ctx context.Context, msisdn string) (BlockStatus, error) {
	v, err := c.call(ctx, "GetBlockStatus", rpcParam{Name: "msisdn", Value: msisdn})
	if err != nil {
		return "", err
	}
	return BlockStatus(v), nil
}

func (c *Client) GetStatus(ctx context.Context, msisdn string) (SubscriptionStatus, error) {
	v, err := c.call(ctx, "GetStatus", rpcParam{Name: "msisdn", Value: msisdn})
	if err != nil {
		return "", err
	}
	return SubscriptionStatus(v), nil
}

func (c *Client) GetBalance(ctx context.Context, msisdn string) (float64, error) {
	v, err := c.call(ctx, "GetBalance", rpcParam{Name: "msisdn", Value: msisdn})
	if err != nil {
		return 0, err
	}
	balance, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &BackendError{Op: "GetBalance", Code: -1, Outcome: OutcomeMiscellaneous}
	}
	return balance, nil
}

// GetAccountPin returns the transfer PIN configured on the account, scoped
// by the customer service name. An account with no PIN returns empty.
func (c *Client) GetAccountPin(ctx context.Context, msisdn, serviceName string) (string, error) {
	return c.call(ctx, "GetAccountPinByServiceName",
		rpcParam{Name: "msisdn", Value: msisdn},
		rpcParam{Name: "serviceName", Value: serviceName},
	)
}

func (c *Client) Reserve(ctx context.Context, msisdn string, eventID int) (int64, error) {
	v, err := c.call(ctx, "ReserveEvent",
		rpcParam{Name: "msisdn", Value: msisdn},
		rpcParam{Name: "eventId", Value: strconv.Itoa(eventID)},
	)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &BackendError{Op: "ReserveEvent", Code: -1, Outcome: OutcomeMiscellaneous}
	}
	return id, nil
}

func (c *Client) ChargeReserved(ctx context.Context, msisdn string, reservationID int64) error {
	_, err := c.call(ctx, "ChargeReservedEvent",
		rpcParam{Name: "msisdn", Value: msisdn},
		rpcParam{Name: "reservationId", Value: strconv.FormatInt(reservationID, 10)},
	)
	return err
}

func (c *Client) CancelReservation(ctx context.Context, msisdn string, reservationID int64) error {
	_, err := c.call(ctx, "CancelReservation",
		rpcParam{Name: "msisdn", Value: msisdn},
		rpcParam{Name: "reservationId", Value: strconv.FormatInt(reservationID, 10)},
	)
	return err
}

func (c *Client) TransferMoney(ctx context.Context, src, dst string, amount float64, reason, actor, note string) error {
	_, err := c.call(ctx, "TransferMoney",
		rpcParam{Name: "source", Value: src},
		rpcParam{Name: "destination", Value: dst},
		rpcParam{Name: "amount", Value: strconv.FormatFloat(amount, 'f', -1, 64)},
		rpcParam{Name: "reason", Value: reason},
		rpcParam{Name: "actor", Value: actor},
		rpcParam{Name: "note", Value: note},
	)
	return err
}

func (c *Client) AdjustByReason(ctx context.Context, msisdn string, signedAmount float64, reason, adjType, note string) error {
	_, err := c.call(ctx, "AdjustAccountByReason",
		rpcParam{Name: "msisdn", Value: msisdn},
		rpcParam{Name: "amount", Value: strconv.FormatFloat(signedAmount, 'f', -1, 64)},
		rpcParam{Name: "reason", Value: reason},
		rpcParam{Name: "type", Value: adjType},
		rpcParam{Name: "note", Value: note},
	)
	return err
}

func (c *Client) ExtendValidity(ctx context.Context, msisdn string, days int) error {
	_, err := c.call(ctx, "ExtendSubscriptionExpiry",
		rpcParam{Name: "msisdn", Value: msisdn},
		rpcParam{Name: "days", Value: strconv.Itoa(days)},
	)
	return err
}

func (c *Client) SendNotification(ctx context.Context, from, to, text string, rightToLeft bool) error {
	_, err := c.call(ctx, "SendHTTPSMS",
		rpcParam{Name: "from", Value: from},
		rpcParam{Name: "to", Value: to},
		rpcParam{Name: "text", Value: text},
		rpcParam{Name: "rtl", Value: strconv.FormatBool(rightToLeft)},
	)
	return err
}

func (c *Client) GetLocale(ctx context.Context, msisdn string) (string, error) {
	return c.call(ctx, "GetAccountLocale", rpcParam{Name: "msisdn", Value: msisdn})
}
