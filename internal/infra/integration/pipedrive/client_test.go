package pipedrive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/georges-crm-sync/internal/entity"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// fakeCRM responde com base em method+path e grava tudo o que recebeu.
type fakeCRM struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter)
}

func newFakeCRM(t *testing.T) (*fakeCRM, *httptest.Server) {
	f := &fakeCRM{routes: map[string]func(w http.ResponseWriter){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &rec.Body))
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		handler, ok := f.routes[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeCRM) on(method, path string, status int, body string) {
	f.routes[method+" "+path] = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestFindPersonBySiren(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/persons", 200, `{"data":[{"id":"fakePersonId"},{"id":"otherPersonId"}]}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	personID, err := client.FindPersonBySiren(context.Background(), "123456789")

	require.NoError(t, err)
	assert.Equal(t, "fakePersonId", personID)
	require.Len(t, crm.requests, 1)
	assert.Equal(t, map[string]string{
		"field": "2d89a2a3c44faab761afe9043da4d40da3538adb",
		"value": "123456789",
	}, crm.requests[0].Query)
}

func TestFindPersonBySirenNotFound(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/persons", 200, `{"data":[]}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	personID, err := client.FindPersonBySiren(context.Background(), "123456789")

	require.NoError(t, err)
	assert.Empty(t, personID)
}

func TestFindPersonBySirenNullData(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/persons", 200, `{"success":true,"data":null}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	personID, err := client.FindPersonBySiren(context.Background(), "123456789")

	require.NoError(t, err)
	assert.Empty(t, personID)
}

func TestFindPersonNumericID(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/persons", 200, `{"data":[{"id":4711}]}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	personID, err := client.FindPersonBySiren(context.Background(), "123456789")

	require.NoError(t, err)
	assert.Equal(t, "4711", personID)
}

func TestUpdatePerson(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("PUT", "/persons/fakePersonId", 200, `{"data":{"id":"fakePersonId"}}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	err := client.UpdatePerson(context.Background(), "fakePersonId", entity.PersonProfile{
		Email:        "john.doe@example.com",
		Phone:        "0102030405",
		Siren:        "123456789",
		LinkedUserID: "#fakeUserId",
		JobLabel:     "nurse",
	})

	require.NoError(t, err)
	require.Len(t, crm.requests, 1)
	assert.Equal(t, map[string]any{
		"email": "john.doe@example.com",
		"phone": "0102030405",
		"2d89a2a3c44faab761afe9043da4d40da3538adb": "123456789",
		"8254d58243c8cf10f258ca054b7bc08582407491": "#fakeUserId",
		"1f2fa3f0c10305458b57ab0cdfeda1915802cfe2": "nurse",
	}, crm.requests[0].Body)
}

func TestUpdatePersonOmitsEmptyFields(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("PUT", "/persons/fakePersonId", 200, `{"data":{"id":"fakePersonId"}}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	err := client.UpdatePerson(context.Background(), "fakePersonId", entity.PersonProfile{
		Siren:        "123456789",
		LinkedUserID: "#fakeUserId",
	})

	require.NoError(t, err)
	require.Len(t, crm.requests, 1)
	assert.Equal(t, map[string]any{
		"2d89a2a3c44faab761afe9043da4d40da3538adb": "123456789",
		"8254d58243c8cf10f258ca054b7bc08582407491": "#fakeUserId",
	}, crm.requests[0].Body, "email, phone e job vazios não são enviados")
}

func TestFindOpenDealForPerson(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/persons/fakePersonId/deals", 200, `{"data":[{"id":"fakeDealId"}]}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	dealID, err := client.FindOpenDealForPerson(context.Background(), "fakePersonId")

	require.NoError(t, err)
	assert.Equal(t, "fakeDealId", dealID)
	assert.Equal(t, map[string]string{"status": "open"}, crm.requests[0].Query)
}

func TestFindOpenDealForPersonNone(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/persons/fakePersonId/deals", 200, `{"data":[]}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	dealID, err := client.FindOpenDealForPerson(context.Background(), "fakePersonId")

	require.NoError(t, err)
	assert.Empty(t, dealID)
}

func TestUpdateDealStage(t *testing.T) {
	cases := []struct {
		name    string
		current string
		stage   entity.Stage
		want    float64
	}{
		{"inbound opportunity", "18", entity.StageOpportunities, 19},
		{"outbound ongoing trial", "22", entity.StageOngoingTrials, 24},
		{"inbound already in trial", "20", entity.StageOngoingTrials, 20},
		{"outbound back to opportunity", "24", entity.StageOpportunities, 23},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			crm, srv := newFakeCRM(t)
			crm.on("GET", "/deals/fakeDealId", 200, `{"data":{"id":"fakeDealId","stage_id":`+c.current+`}}`)
			crm.on("PUT", "/deals/fakeDealId", 200, `{"data":{"id":"fakeDealId"}}`)

			client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
			err := client.UpdateDealStage(context.Background(), "fakeDealId", c.stage)

			require.NoError(t, err)
			require.Len(t, crm.requests, 2)
			assert.Equal(t, "GET", crm.requests[0].Method)
			assert.Equal(t, "PUT", crm.requests[1].Method)
			assert.Equal(t, map[string]any{"stage_id": c.want}, crm.requests[1].Body)
		})
	}
}

func TestUpdateDealStageUnknownStageID(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/deals/fakeDealId", 200, `{"data":{"id":"fakeDealId","stage_id":42}}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	err := client.UpdateDealStage(context.Background(), "fakeDealId", entity.StageOpportunities)

	assert.ErrorIs(t, err, entity.ErrUnknownStageID)
	require.Len(t, crm.requests, 1, "nenhum PUT com stage desconhecido")
}

func TestNonSuccessStatusReturnsAPIError(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("PUT", "/persons/fakePersonId", 502, `{"error":"bad gateway"}`)

	client := NewClient(srv.URL, "", entity.DefaultStageDirectory())
	err := client.UpdatePerson(context.Background(), "fakePersonId", entity.PersonProfile{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "update_person", apiErr.Operation)
	assert.Equal(t, 502, apiErr.StatusCode)
}

func TestAPITokenIsSentAsQueryParam(t *testing.T) {
	crm, srv := newFakeCRM(t)
	crm.on("GET", "/persons/fakePersonId/deals", 200, `{"data":[]}`)

	client := NewClient(srv.URL, "secret-token", entity.DefaultStageDirectory())
	_, err := client.FindOpenDealForPerson(context.Background(), "fakePersonId")

	require.NoError(t, err)
	assert.Equal(t, "secret-token", crm.requests[0].Query["api_token"])
	assert.Equal(t, "open", crm.requests[0].Query["status"])
}

func TestPersonFieldKeysAreComplete(t *testing.T) {
	seen := map[string]bool{}
	for field, key := range personFieldKeys {
		assert.NotEmpty(t, key, "campo %s sem chave", entity.PersonField(field))
		assert.False(t, seen[key], "chave %s repetida", key)
		seen[key] = true
	}
}
