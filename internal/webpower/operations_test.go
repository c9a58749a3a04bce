package webpower

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpower-client/internal/soap"
)

func paramValue(t *testing.T, params soap.Params, name string) any {
	t.Helper()
	for _, p := range params {
		if p.Name == name {
			return p.Value
		}
	}
	t.Fatalf("parameter %s not found", name)
	return nil
}

func TestCreateMailingFromContent(t *testing.T) {
	client, mock := newTestClient(int64(4630), nil)

	id, err := client.CreateMailingFromContent(context.TODO(), MailingContent{
		MailinglistID: 12,
		Name:          "spring café news",
		Subject:       "Nieuws",
		FromName:      "Acme",
		FromEmail:     "news@acme.example",
		HTMLBody:      "<p>hoi</p>",
		TextBody:      "hoi",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4630), id)
	require.Len(t, mock.calls, 1)
	assert.Equal(t, "Mailing_createFromContent", mock.calls[0].method)
	assert.Equal(t, int64(12), paramValue(t, mock.calls[0].params, "mailinglistid"))
	// text fields travel as single-byte latin1
	assert.Equal(t, "spring caf\xe9 news", paramValue(t, mock.calls[0].params, "name"))
	assert.Equal(t, "news@acme.example", paramValue(t, mock.calls[0].params, "from_email"))
}

func TestCreateMailingFromContentAcceptsNumericString(t *testing.T) {
	client, _ := newTestClient("4630", nil)

	id, err := client.CreateMailingFromContent(context.TODO(), MailingContent{MailinglistID: 12})

	require.NoError(t, err)
	assert.Equal(t, int64(4630), id)
}

func TestCreateMailingFromContentRejectsNonNumericResult(t *testing.T) {
	client, _ := newTestClient("ERR_NO_CONTENT", nil)

	_, err := client.CreateMailingFromContent(context.TODO(), MailingContent{MailinglistID: 12})

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ERR_NO_CONTENT", domainErr.Code)
}

func TestCreateMailingFromTemplate(t *testing.T) {
	client, mock := newTestClient(int64(99), nil)

	id, err := client.CreateMailingFromTemplate(context.TODO(), TemplateMailing{
		MailinglistID: 12,
		TemplateID:    3,
		Name:          "weekly",
		Subject:       "Weekbrief",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
	require.Len(t, mock.calls, 1)
	assert.Equal(t, "Mailing_createFromTemplate", mock.calls[0].method)
	assert.Equal(t, int64(3), paramValue(t, mock.calls[0].params, "templateid"))
}

func TestCreateMailingFromTemplateRejectsNonNumericResult(t *testing.T) {
	client, _ := newTestClient(map[string]any{"error": "nope"}, nil)

	_, err := client.CreateMailingFromTemplate(context.TODO(), TemplateMailing{MailinglistID: 12})

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, map[string]any{"error": "nope"}, domainErr.Code)
}

func TestSendMailingToSubscribers(t *testing.T) {
	client, mock := newTestClient(int64(2), nil)

	queued, err := client.SendMailingToSubscribers(context.TODO(), 4630, []int64{11, 12})

	require.NoError(t, err)
	assert.Equal(t, int64(2), queued)
	require.Len(t, mock.calls, 1)
	assert.Equal(t, "Subscriber_sendMailingToSubscribers", mock.calls[0].method)
	assert.Equal(t, []int64{11, 12}, paramValue(t, mock.calls[0].params, "subscriberids"))
}

func TestSendMailingToSubscribersRejectsEmptyListBeforeTransport(t *testing.T) {
	client, mock := newTestClient(int64(0), nil)

	_, err := client.SendMailingToSubscribers(context.TODO(), 4630, nil)

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Empty(t, mock.calls)
}

func TestSubscribeAcceptsProviderStatuses(t *testing.T) {
	for _, status := range []string{"OK_UPDATED", "OK_CONFIRM", "OK_BEDANKT"} {
		t.Run(status, func(t *testing.T) {
			client, mock := newTestClient(status, nil)

			result, err := client.Subscribe(context.TODO(), 7, Subscriber{
				Email:     "jan@example.com",
				Firstname: "Jan",
				Lastname:  "Jansen",
				Fields:    map[string]any{"city": "Utrecht"},
			})

			require.NoError(t, err)
			assert.Equal(t, status, result)
			require.Len(t, mock.calls, 1)
			assert.Equal(t, "Subscriber_set", mock.calls[0].method)
			assert.Equal(t, map[string]any{
				"email":     "jan@example.com",
				"firstname": "Jan",
				"lastname":  "Jansen",
				"city":      "Utrecht",
			}, paramValue(t, mock.calls[0].params, "subscriber"))
		})
	}
}

func TestSubscribeRejectsUnknownStatus(t *testing.T) {
	client, _ := newTestClient("FAIL", nil)

	_, err := client.Subscribe(context.TODO(), 7, Subscriber{Email: "jan@example.com"})

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FAIL", domainErr.Code)
}

func TestUnsubscribeAcceptsProviderStatuses(t *testing.T) {
	for _, status := range []string{"OK", "OK_CONFIRM"} {
		t.Run(status, func(t *testing.T) {
			client, mock := newTestClient(status, nil)

			result, err := client.Unsubscribe(context.TODO(), 7, "jan@example.com")

			require.NoError(t, err)
			assert.Equal(t, status, result)
			assert.Equal(t, "Subscriber_unsubscribe", mock.calls[0].method)
			assert.Equal(t, "jan@example.com", paramValue(t, mock.calls[0].params, "email"))
		})
	}
}

func TestUnsubscribeRejectsUnknownStatus(t *testing.T) {
	client, _ := newTestClient("NOT_FOUND", nil)

	_, err := client.Unsubscribe(context.TODO(), 7, "jan@example.com")

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestMailingListsIsPassthrough(t *testing.T) {
	lists := []any{
		map[string]any{"id": int64(1), "name": "Newsletter"},
		map[string]any{"id": int64(2), "name": "Promo"},
	}
	client, mock := newTestClient(lists, nil)

	result, err := client.MailingLists(context.TODO())

	require.NoError(t, err)
	assert.Equal(t, lists, result)
	assert.Equal(t, "Mailinglist_all", mock.calls[0].method)
	assert.Nil(t, mock.calls[0].params)
}

func TestUnsubscriptionsDefaultsEndOfPeriodToNow(t *testing.T) {
	client, mock := newTestClient([]any{}, nil)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := client.Unsubscriptions(context.TODO(), 7, from, time.Time{})

	require.NoError(t, err)
	params := mock.calls[0].params
	assert.Equal(t, "Mailinglist_getUnsubscriptions", mock.calls[0].method)
	assert.Equal(t, from, paramValue(t, params, "from"))

	to, ok := paramValue(t, params, "to").(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), to, 5*time.Second)

	assert.Equal(t, []string{"self", "admin", "hard", "soft", "spam", "zombie"},
		paramValue(t, params, "reasons"))
}

func TestUnsubscriptionsKeepsExplicitPeriod(t *testing.T) {
	client, mock := newTestClient([]any{}, nil)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	_, err := client.Unsubscriptions(context.TODO(), 7, from, to)

	require.NoError(t, err)
	assert.Equal(t, to, paramValue(t, mock.calls[0].params, "to"))
}

func TestSubscriberByEmailDefaultsColumns(t *testing.T) {
	client, mock := newTestClient(map[string]any{"email": "jan@example.com"}, nil)

	_, err := client.SubscriberByEmail(context.TODO(), 7, "jan@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Subscriber_getByEmail", mock.calls[0].method)
	assert.Equal(t, []string{"email", "firstname", "infix", "lastname"},
		paramValue(t, mock.calls[0].params, "columns"))
}

func TestSubscriberByEmailKeepsExplicitColumns(t *testing.T) {
	client, mock := newTestClient(map[string]any{}, nil)

	_, err := client.SubscriberByEmail(context.TODO(), 7, "jan@example.com", "email", "city")

	require.NoError(t, err)
	assert.Equal(t, []string{"email", "city"}, paramValue(t, mock.calls[0].params, "columns"))
}

func TestOperationsPropagateTransportFault(t *testing.T) {
	fault := &soap.Fault{Code: "105", Message: "Login incorrect"}
	client, _ := newTestClient(nil, fault)

	_, err := client.Subscribe(context.TODO(), 7, Subscriber{Email: "jan@example.com"})

	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Login incorrect", domainErr.Message)
	assert.Equal(t, "105", domainErr.Code)
}
