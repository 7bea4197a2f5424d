package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// OTPService proxies the external verification provider. OTP state, retry,
// and delivery all live on the provider side; this service only forwards the
// calls and hands the provider's JSON back to the client.
type OTPService struct {
	BaseURL    string
	CustomerID string
	AuthToken  string
	Client     *http.Client
}

func NewOTPService(baseURL, customerID, authToken string) *OTPService {
	return &OTPService{
		BaseURL:    baseURL,
		CustomerID: customerID,
		AuthToken:  authToken,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (o *OTPService) Send(ctx context.Context, mobileNumber string) (json.RawMessage, error) {
	if mobileNumber == "" {
		return nil, fmt.Errorf("%w: mobile number is required", ErrValidation)
	}

	q := url.Values{}
	q.Set("countryCode", "91")
	q.Set("customerId", o.CustomerID)
	q.Set("flowType", "SMS")
	q.Set("mobileNumber", mobileNumber)

	return o.do(ctx, http.MethodPost, o.BaseURL+"/send?"+q.Encode())
}

func (o *OTPService) Verify(ctx context.Context, mobileNumber, verificationID, code string) (json.RawMessage, error) {
	if mobileNumber == "" || verificationID == "" || code == "" {
		return nil, fmt.Errorf("%w: mobileNumber, verificationId and code are required", ErrValidation)
	}

	q := url.Values{}
	q.Set("countryCode", "91")
	q.Set("customerId", o.CustomerID)
	q.Set("mobileNumber", mobileNumber)
	q.Set("verificationId", verificationID)
	q.Set("code", code)

	return o.do(ctx, http.MethodGet, o.BaseURL+"/validateOtp?"+q.Encode())
}

func (o *OTPService) do(ctx context.Context, method, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("authToken", o.AuthToken)

	res, err := o.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("otp provider returned %d", res.StatusCode)
	}
	return json.RawMessage(body), nil
}
