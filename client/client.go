// Package client talks to the admin REST API and drives the attendance
// marking page on top of it.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"student_admin_backend/attendance"
	"student_admin_backend/models"

	"github.com/go-resty/resty/v2"
)

var (
	ErrConnection = errors.New("cannot reach the server")
	ErrAuth       = errors.New("not authorized")
)

// APIError is a non-2xx answer other than 401/403.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client is safe for concurrent use once the token is set.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15*time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out interface{}) error {
	var apiErr errorBody
	req := c.http.R().SetContext(ctx).SetError(&apiErr)
	if query != nil {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, apiErr.Message)
	case resp.IsError():
		return &APIError{StatusCode: code, Message: apiErr.Message}
	}
	return nil
}

// Login authenticates and keeps the access token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var out struct {
		Data models.LoginResponse `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil,
		models.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return models.LoginResponse{}, err
	}
	c.SetToken(out.Data.AccessToken)
	return out.Data, nil
}

// ListStudents returns the roster in the server's order.
func (c *Client) ListStudents(ctx context.Context) ([]models.Student, error) {
	var out struct {
		Students []models.Student `json:"students"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/students/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Students, nil
}

func (c *Client) GetByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	var out struct {
		Attendance []attendance.Record `json:"attendance"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/attendance/date/"+date, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Attendance, nil
}

func (c *Client) GetByRange(ctx context.Context, start, end string) ([]attendance.Record, error) {
	var out struct {
		Attendance []attendance.Record `json:"attendance"`
	}
	query := map[string]string{"startDate": start, "endDate": end}
	if err := c.do(ctx, http.MethodGet, "/api/attendance/records", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Attendance, nil
}

type markBulkBody struct {
	AttendanceRecords []attendance.Submission `json:"attendanceRecords"`
	Date              string                  `json:"date"`
}

// BulkUpsert sends one mark-bulk request per date, keeping the row order.
func (c *Client) BulkUpsert(ctx context.Context, rows []attendance.Submission) (attendance.BulkResult, error) {
	res := attendance.BulkResult{Failed: []string{}}

	var dates []string
	byDate := make(map[string][]attendance.Submission)
	for _, row := range rows {
		if _, ok := byDate[row.Date]; !ok {
			dates = append(dates, row.Date)
		}
		byDate[row.Date] = append(byDate[row.Date], row)
	}

	for _, date := range dates {
		var out struct {
			Results attendance.BulkResult `json:"results"`
		}
		err := c.do(ctx, http.MethodPost, "/api/attendance/mark-bulk", nil,
			markBulkBody{AttendanceRecords: byDate[date], Date: date}, &out)
		if err != nil {
			return res, err
		}
		res.Succeeded += out.Results.Succeeded
		res.Failed = append(res.Failed, out.Results.Failed...)
	}
	return res, nil
}

// Report asks the server for the range statistics.
func (c *Client) Report(ctx context.Context, start, end string) (attendance.Report, error) {
	var out attendance.Report
	query := map[string]string{"startDate": start, "endDate": end}
	if err := c.do(ctx, http.MethodGet, "/api/attendance/report", query, nil, &out); err != nil {
		return attendance.Report{}, err
	}
	return out, nil
}

func (c *Client) Payments(ctx context.Context, search string) ([]models.Payment, error) {
	var out struct {
		Payments []models.Payment `json:"payments"`
	}
	var query map[string]string
	if search != "" {
		query = map[string]string{"search": search}
	}
	if err := c.do(ctx, http.MethodGet, "/api/payments/all", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}

func (c *Client) PaymentStatistics(ctx context.Context) (models.PaymentStatistics, error) {
	var out struct {
		Statistics models.PaymentStatistics `json:"statistics"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/payments/stats", nil, nil, &out); err != nil {
		return models.PaymentStatistics{}, err
	}
	return out.Statistics, nil
}
