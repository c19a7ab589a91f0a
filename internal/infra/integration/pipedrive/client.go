package pipedrive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xavierca1/georges-crm-sync/internal/entity"
)

const DefaultBaseURL = "http://api.crm.com/v1"

type Client struct {
	baseURL  string
	apiToken string
	stages   *entity.StageDirectory
	http     *http.Client
}

func NewClient(baseURL, apiToken string, stages *entity.StageDirectory) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiToken: apiToken,
		stages:   stages,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// FindPersonBySiren devolve "" quando nenhuma pessoa tem esse SIREN.
func (c *Client) FindPersonBySiren(ctx context.Context, siren string) (string, error) {
	q := url.Values{}
	q.Set("field", SirenFieldKey)
	q.Set("value", siren)

	var result listResponse
	if err := c.do(ctx, "find_person", http.MethodGet, "/persons", q, nil, &result); err != nil {
		return "", err
	}
	return firstID(result), nil
}

func (c *Client) UpdatePerson(ctx context.Context, personID string, profile entity.PersonProfile) error {
	path := "/persons/" + url.PathEscape(personID)
	return c.do(ctx, "update_person", http.MethodPut, path, nil, personPayload(profile), nil)
}

// FindOpenDealForPerson devolve "" quando a pessoa não tem deal aberto.
func (c *Client) FindOpenDealForPerson(ctx context.Context, personID string) (string, error) {
	q := url.Values{}
	q.Set("status", "open")

	var result listResponse
	path := "/persons/" + url.PathEscape(personID) + "/deals"
	if err := c.do(ctx, "find_open_deal", http.MethodGet, path, q, nil, &result); err != nil {
		return "", err
	}
	return firstID(result), nil
}

func (c *Client) GetDeal(ctx context.Context, dealID string) (*entity.Deal, error) {
	var result dealResponse
	if err := c.do(ctx, "get_deal", http.MethodGet, "/deals/"+url.PathEscape(dealID), nil, nil, &result); err != nil {
		return nil, err
	}
	if result.Data == nil {
		return nil, fmt.Errorf("deal %s sem dados na resposta", dealID)
	}
	id := string(result.Data.ID)
	if id == "" {
		id = dealID
	}
	return &entity.Deal{ID: id, StageID: result.Data.StageID}, nil
}

// UpdateDealStage move o deal para o stage pedido dentro do pipeline em que ele já está.
func (c *Client) UpdateDealStage(ctx context.Context, dealID string, stage entity.Stage) error {
	deal, err := c.GetDeal(ctx, dealID)
	if err != nil {
		return err
	}

	pipeline, err := c.stages.PipelineOf(deal.StageID)
	if err != nil {
		return fmt.Errorf("deal %s: %w", dealID, err)
	}

	target, err := c.stages.StageIDFor(pipeline, stage)
	if err != nil {
		return fmt.Errorf("deal %s: %w", dealID, err)
	}

	log.Debug().
		Str("deal_id", dealID).
		Int("from_stage_id", int(deal.StageID)).
		Int("to_stage_id", int(target)).
		Str("pipeline", string(pipeline)).
		Msg("🔀 Pipedrive: atualizando stage do deal")

	path := "/deals/" + url.PathEscape(deal.ID)
	return c.do(ctx, "update_deal_stage", http.MethodPut, path, nil, updateDealStageRequest{StageID: target}, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiToken != "" {
		query.Set("api_token", c.apiToken)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("erro ao serializar %s: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request pipedrive %s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta %s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Operation: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("erro decode pipedrive %s: %w", op, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
}

func firstID(r listResponse) string {
	if len(r.Data) == 0 {
		return ""
	}
	return string(r.Data[0].ID)
}
