package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const sessionExpiredMessage = "Session expired. Please login again."

const jsonContentType = "application/json"

const requestIdHeader = "X-Request-Id"

var errInvalidJsonResponse = errors.New("invalid JSON in response body")

type ApiRequestOptions struct {
	Method  string
	Query   url.Values
	Body    any
	Headers map[string]string
}

type ApiResponse struct {
	Status      int
	ContentType string
	JSON        json.RawMessage
	Text        string
}

type ApiGatewayInterface interface {
	// Call returns a nil response with a nil error when the session was rejected by the backend.
	Call(ctx context.Context, path string, options ApiRequestOptions) (*ApiResponse, error)
	Login(ctx context.Context, username string, password string) (*LoginResponse, error)
	Signup(ctx context.Context, request SignupRequest) (string, error)
}

type ApiGateway struct {
	out          io.Writer
	debugLogger  *DebugLogger
	baseUrl      string
	client       *http.Client
	session      SessionStoreInterface
	router       ViewRouterInterface
	notifier     NotifierInterface
	newRequestId func() string
}

func NewApiGateway(
	baseUrl string, client *http.Client, session SessionStoreInterface,
	router ViewRouterInterface, notifier NotifierInterface, out io.Writer, debugLogger *DebugLogger,
) *ApiGateway {
	if client == nil {
		client = &http.Client{}
	}

	return &ApiGateway{
		out:          out,
		debugLogger:  debugLogger,
		baseUrl:      strings.TrimRight(baseUrl, "/"),
		client:       client,
		session:      session,
		router:       router,
		notifier:     notifier,
		newRequestId: uuid.NewString,
	}
}

func (gateway *ApiGateway) Call(ctx context.Context, path string, options ApiRequestOptions) (*ApiResponse, error) {
	method := options.Method
	if method == "" {
		method = http.MethodGet
	}

	headers := gateway.baseHeaders(true)
	for name, value := range options.Headers {
		headers.Set(name, value)
	}

	response, err := gateway.dispatch(ctx, method, path, options.Query, options.Body, headers)
	if err != nil {
		ApiErrorCount.Inc()
		_, _ = fmt.Fprintf(gateway.out, "API call failed: %s %s: %v\n", method, path, err)
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		ApiUnauthorizedCount.Inc()
		_, _ = fmt.Fprintf(gateway.out, "API call failed: %s %s: session rejected with status 401\n", method, path)
		gateway.expireSession()
		return nil, nil
	}

	body, err := io.ReadAll(response.Body)
	if err == nil && (response.StatusCode < 200 || response.StatusCode > 299) {
		err = newRequestError(method, path, response.StatusCode, string(body))
	}

	var result *ApiResponse
	if err == nil {
		result, err = makeApiResponse(response, body)
	}

	if err != nil {
		ApiErrorCount.Inc()
		_, _ = fmt.Fprintf(gateway.out, "API call failed: %s %s: %v\n", method, path, err)
		return nil, err
	}

	ApiRequestTotal.Inc()
	gateway.debugLogger.Log("API call %s %s: status %d, content type %q", method, path, result.Status, result.ContentType)

	return result, nil
}

func (gateway *ApiGateway) Login(ctx context.Context, username string, password string) (*LoginResponse, error) {
	response, err := gateway.dispatch(
		ctx, http.MethodPost, "/auth/login", nil,
		LoginRequest{Username: username, Password: password},
		gateway.baseHeaders(false),
	)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrLoginFailed, response.StatusCode)
	}

	loginResponse := &LoginResponse{}
	err = json.NewDecoder(response.Body).Decode(loginResponse)
	if err == nil && (loginResponse.Token == "" || loginResponse.User.Role == "") {
		err = ErrIncompleteSession
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	return loginResponse, nil
}

func (gateway *ApiGateway) Signup(ctx context.Context, request SignupRequest) (string, error) {
	response, err := gateway.dispatch(
		ctx, http.MethodPost, "/auth/signup", nil, request, gateway.baseHeaders(false),
	)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err == nil && (response.StatusCode < 200 || response.StatusCode > 299) {
		err = newRequestError(http.MethodPost, "/auth/signup", response.StatusCode, string(body))
	}

	return string(body), err
}

func (gateway *ApiGateway) baseHeaders(withBearer bool) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", jsonContentType)
	headers.Set(requestIdHeader, gateway.newRequestId())
	if withBearer {
		headers.Set("Authorization", "Bearer "+gateway.session.Read().Token)
	}

	return headers
}

func (gateway *ApiGateway) dispatch(
	ctx context.Context, method string, path string, query url.Values, body any, headers http.Header,
) (*http.Response, error) {
	requestUrl := gateway.baseUrl + path
	if len(query) != 0 {
		requestUrl += "?" + query.Encode()
	}

	bodyReader, err := encodeRequestBody(body)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, method, requestUrl, bodyReader)
	if err != nil {
		return nil, err
	}
	request.Header = headers

	return gateway.client.Do(request)
}

func (gateway *ApiGateway) expireSession() {
	if err := gateway.session.Clear(); err != nil {
		_, _ = fmt.Fprintf(gateway.out, "Failed to clear session: %v\n", err)
	}

	gateway.notifier.Alert(sessionExpiredMessage)

	if err := gateway.router.ShowSection(LoginSection); err != nil {
		_, _ = fmt.Fprintf(gateway.out, "Failed to show login section: %v\n", err)
	}
}

func encodeRequestBody(body any) (io.Reader, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(typed), nil
	case []byte:
		return bytes.NewReader(typed), nil
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(encoded), nil
	}
}

func makeApiResponse(response *http.Response, body []byte) (*ApiResponse, error) {
	result := &ApiResponse{
		Status:      response.StatusCode,
		ContentType: response.Header.Get("Content-Type"),
	}

	if strings.Contains(result.ContentType, jsonContentType) {
		if !json.Valid(body) {
			return nil, errInvalidJsonResponse
		}
		result.JSON = body
	} else {
		result.Text = string(body)
	}

	return result, nil
}

func (response *ApiResponse) IsJSON() bool {
	return response.JSON != nil
}

func (response *ApiResponse) Decode(dest any) error {
	if !response.IsJSON() {
		return fmt.Errorf("expected JSON response, got %q", response.ContentType)
	}

	return json.Unmarshal(response.JSON, dest)
}
