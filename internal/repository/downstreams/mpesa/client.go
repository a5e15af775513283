package mpesa

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/kenawards/reg-membership-service/internal/config"
	"github.com/kenawards/reg-membership-service/internal/repository/downstreams"
)

// ErrTokenRequest marks failures of the token exchange, so callers can tell
// them apart from failures of the push initiation itself.
var ErrTokenRequest = errors.New("could not obtain gateway access token")

const transactionTypePayBill = "CustomerPayBillOnline"

type Impl struct {
	tokenClient aurestclientapi.Client
	pushClient  aurestclientapi.Client
	conf        config.MpesaConfig
}

func New(conf config.MpesaConfig) (Gateway, error) {
	if conf.BaseUrl == "" {
		return nil, errors.New("service.mpesa.base_url not configured. This service cannot function without the payment gateway, though you can run it in inmemory database mode for development")
	}

	tokenClient, err := downstreams.ClientWith(
		downstreams.BasicAuthRequestManipulator(conf.ConsumerKey, conf.ConsumerSecret),
		"mpesa-token-breaker",
	)
	if err != nil {
		return nil, err
	}

	pushClient, err := downstreams.ClientWith(
		downstreams.BearerTokenRequestManipulator(),
		"mpesa-stkpush-breaker",
	)
	if err != nil {
		return nil, err
	}

	return &Impl{
		tokenClient: tokenClient,
		pushClient:  pushClient,
		conf:        conf,
	}, nil
}

type tokenResponseDto struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

func (i *Impl) AccessToken(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/oauth/v1/generate?grant_type=client_credentials", i.conf.BaseUrl)
	bodyDto := tokenResponseDto{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}

	err := i.tokenClient.Perform(ctx, http.MethodGet, url, nil, &response)
	if err := downstreams.ErrByStatus(err, response.Status); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}

	if bodyDto.AccessToken == "" {
		return "", fmt.Errorf("%w: response contained no access token", ErrTokenRequest)
	}

	return bodyDto.AccessToken, nil
}

type stkPushPayloadDto struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

func (i *Impl) InitiateSTKPush(ctx context.Context, request STKPushRequest) (STKPushResponse, error) {
	token, err := i.AccessToken(ctx)
	if err != nil {
		return STKPushResponse{}, err
	}

	timestamp := pushTimestamp(time.Now().UTC())
	payload := stkPushPayloadDto{
		BusinessShortCode: i.conf.ShortCode,
		Password:          pushPassword(i.conf.ShortCode, i.conf.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   transactionTypePayBill,
		Amount:            request.Amount,
		PartyA:            request.PhoneNumber,
		PartyB:            i.conf.ShortCode,
		PhoneNumber:       request.PhoneNumber,
		CallBackURL:       i.conf.CallbackUrl,
		AccountReference:  i.conf.AccountReference,
		TransactionDesc:   i.conf.TransactionDesc,
	}

	url := fmt.Sprintf("%s/mpesa/stkpush/v1/processrequest", i.conf.BaseUrl)
	bodyDto := STKPushResponse{}
	response := aurestclientapi.ParsedResponse{
		Body: &bodyDto,
	}

	err = i.pushClient.Perform(downstreams.ContextWithBearerToken(ctx, token), http.MethodPost, url, payload, &response)
	return bodyDto, downstreams.ErrByStatus(err, response.Status)
}

// pushTimestamp renders the 14 digit timestamp the provider expects,
// YYYYMMDDHHMMSS in UTC.
func pushTimestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// pushPassword derives the per-request password, base64 over the
// concatenation of short code, passkey and timestamp.
func pushPassword(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}
