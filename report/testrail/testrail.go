// Package testrail uploads scenario results to a TestRail run.
package testrail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/waitker/report"
)

// TestRail status ids
const (
	StatusPassed = 1
	StatusFailed = 5
)

// Client adds results to one test run
type Client struct {
	baseURL string
	user    string
	apiKey  string
	runID   string
	http    *http.Client
}

// New client for the TestRail instance at baseURL, results go to run runID.
func New(baseURL, user, apiKey, runID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    user,
		apiKey:  apiKey,
		runID:   runID,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type addResult struct {
	StatusID int    `json:"status_id"`
	Comment  string `json:"comment"`
	Elapsed  string `json:"elapsed"`
}

func statusID(s report.Status) int {
	if s == report.StatusPassed {
		return StatusPassed
	}
	return StatusFailed
}

// AddResult posts add_result_for_case; results without a case id are skipped.
func (c *Client) AddResult(ctx context.Context, r *report.Result) error {
	caseID := strings.TrimPrefix(r.CaseID, "C")
	if caseID == "" {
		log.Debug().Str("scenario", r.Name).Msg("no testrail case, skipping upload")
		return nil
	}

	body, err := json.Marshal(&addResult{
		StatusID: statusID(r.Status),
		Comment:  report.Comment(r),
		Elapsed:  report.FormatElapsed(r.Elapsed),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/index.php?/api/v2/add_result_for_case/%s/%s", c.baseURL, c.runID, caseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.user, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "testrail request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Errorf("testrail returned %d for case %s: %s", resp.StatusCode, caseID, strings.TrimSpace(string(msg)))
	}
	log.Info().Str("case", caseID).Str("run", c.runID).Msg("result uploaded to testrail")
	return nil
}
