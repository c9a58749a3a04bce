package webpower

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"webpower-client/internal/soap"
)

// unsubscribeReasons is the full reason set the provider distinguishes.
// Mailinglist_getUnsubscriptions always queries all of them.
var unsubscribeReasons = []string{"self", "admin", "hard", "soft", "spam", "zombie"}

// defaultSubscriberColumns are the columns fetched by SubscriberByEmail when
// the caller does not ask for specific ones.
var defaultSubscriberColumns = []string{"email", "firstname", "infix", "lastname"}

var subscribeResults = []string{"OK_UPDATED", "OK_CONFIRM", "OK_BEDANKT"}

var unsubscribeResults = []string{"OK", "OK_CONFIRM"}

// MailingContent describes a mailing built from scratch. The free-text
// fields are re-encoded to ISO-8859-1 before transmission; the provider does
// not accept multi-byte payloads.
type MailingContent struct {
	MailinglistID int64
	Name          string
	Subject       string
	FromName      string
	FromEmail     string
	HTMLBody      string
	TextBody      string
}

// TemplateMailing describes a mailing instantiated from a stored template.
type TemplateMailing struct {
	MailinglistID int64
	TemplateID    int64
	Name          string
	Subject       string
}

// Subscriber holds the profile sent with Subscribe. Fields carries any
// additional provider-side columns beyond the standard four.
type Subscriber struct {
	Email     string
	Firstname string
	Infix     string
	Lastname  string
	Fields    map[string]any
}

func (s Subscriber) asParam() map[string]any {
	m := map[string]any{"email": s.Email}
	if s.Firstname != "" {
		m["firstname"] = s.Firstname
	}
	if s.Infix != "" {
		m["infix"] = s.Infix
	}
	if s.Lastname != "" {
		m["lastname"] = s.Lastname
	}
	for k, v := range s.Fields {
		m[k] = v
	}
	return m
}

// CreateMailingFromContent creates a new mailing and returns its id.
func (c *Client) CreateMailingFromContent(ctx context.Context, m MailingContent) (int64, error) {
	result, err := c.call(ctx, "Mailing_createFromContent", soap.Params{
		{Name: "mailinglistid", Value: m.MailinglistID},
		{Name: "name", Value: toLatin1(m.Name)},
		{Name: "subject", Value: toLatin1(m.Subject)},
		{Name: "from_name", Value: toLatin1(m.FromName)},
		{Name: "from_email", Value: m.FromEmail},
		{Name: "html", Value: toLatin1(m.HTMLBody)},
		{Name: "text", Value: toLatin1(m.TextBody)},
	})
	if err != nil {
		return 0, err
	}

	return expectNumeric("Mailing_createFromContent", result)
}

// CreateMailingFromTemplate instantiates a stored template as a new mailing
// and returns its id.
func (c *Client) CreateMailingFromTemplate(ctx context.Context, m TemplateMailing) (int64, error) {
	result, err := c.call(ctx, "Mailing_createFromTemplate", soap.Params{
		{Name: "mailinglistid", Value: m.MailinglistID},
		{Name: "templateid", Value: m.TemplateID},
		{Name: "name", Value: toLatin1(m.Name)},
		{Name: "subject", Value: toLatin1(m.Subject)},
	})
	if err != nil {
		return 0, err
	}

	return expectNumeric("Mailing_createFromTemplate", result)
}

// SendMailingToSubscribers queues a mailing for the given subscribers and
// returns the number of queued messages. An empty subscriber list is
// rejected before anything goes over the wire.
func (c *Client) SendMailingToSubscribers(ctx context.Context, mailingID int64, subscriberIDs []int64) (int64, error) {
	if len(subscriberIDs) == 0 {
		return 0, &Error{Message: "no subscribers given to send the mailing to"}
	}

	result, err := c.call(ctx, "Subscriber_sendMailingToSubscribers", soap.Params{
		{Name: "mailingid", Value: mailingID},
		{Name: "subscriberids", Value: subscriberIDs},
	})
	if err != nil {
		return 0, err
	}

	return expectNumeric("Subscriber_sendMailingToSubscribers", result)
}

// Subscribe adds or updates a subscriber on a list and returns the
// provider's status code, one of OK_UPDATED, OK_CONFIRM or OK_BEDANKT.
func (c *Client) Subscribe(ctx context.Context, mailinglistID int64, subscriber Subscriber) (string, error) {
	result, err := c.call(ctx, "Subscriber_set", soap.Params{
		{Name: "mailinglistid", Value: mailinglistID},
		{Name: "subscriber", Value: subscriber.asParam()},
	})
	if err != nil {
		return "", err
	}

	return expectStatus("Subscriber_set", result, subscribeResults)
}

// Unsubscribe removes a subscriber from a list and returns the provider's
// status code, either OK or OK_CONFIRM.
func (c *Client) Unsubscribe(ctx context.Context, mailinglistID int64, email string) (string, error) {
	result, err := c.call(ctx, "Subscriber_unsubscribe", soap.Params{
		{Name: "mailinglistid", Value: mailinglistID},
		{Name: "email", Value: email},
	})
	if err != nil {
		return "", err
	}

	return expectStatus("Subscriber_unsubscribe", result, unsubscribeResults)
}

// MailingLists returns all mailing lists of the account, as decoded from the
// response without further interpretation.
func (c *Client) MailingLists(ctx context.Context) (any, error) {
	return c.call(ctx, "Mailinglist_all", nil)
}

// Unsubscriptions lists the unsubscriptions on a list within the given
// period, for every reason the provider knows. A zero end time means "now".
func (c *Client) Unsubscriptions(ctx context.Context, mailinglistID int64, from time.Time, to time.Time) (any, error) {
	if to.IsZero() {
		to = time.Now()
	}

	return c.call(ctx, "Mailinglist_getUnsubscriptions", soap.Params{
		{Name: "mailinglistid", Value: mailinglistID},
		{Name: "from", Value: from},
		{Name: "to", Value: to},
		{Name: "reasons", Value: unsubscribeReasons},
	})
}

// SubscriberByEmail fetches a subscriber's profile. Without explicit columns
// it requests email, firstname, infix and lastname.
func (c *Client) SubscriberByEmail(ctx context.Context, mailinglistID int64, email string, columns ...string) (any, error) {
	if len(columns) == 0 {
		columns = defaultSubscriberColumns
	}

	return c.call(ctx, "Subscriber_getByEmail", soap.Params{
		{Name: "mailinglistid", Value: mailinglistID},
		{Name: "email", Value: email},
		{Name: "columns", Value: columns},
	})
}

// expectNumeric validates results of operations that return an id or count.
// Ids arrive typed as int or as a plain numeric string depending on the
// server version, so both are accepted.
func expectNumeric(method string, result any) (int64, error) {
	switch v := result.(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(f), nil
		}
	}

	return 0, &Error{
		Message: fmt.Sprintf("%s returned a non-numeric result", method),
		Code:    result,
	}
}

// expectStatus validates results of operations that return one of a fixed
// set of status codes.
func expectStatus(method string, result any, allowed []string) (string, error) {
	if s, ok := result.(string); ok {
		for _, a := range allowed {
			if s == a {
				return s, nil
			}
		}
	}

	return "", &Error{
		Message: fmt.Sprintf("%s returned an unexpected result", method),
		Code:    result,
	}
}
