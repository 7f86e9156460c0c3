package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

type FCMSendResponse struct {
	Success int             `json:"success"`
	Failure int             `json:"failure"`
	Results []FCMSendResult `json:"results"`
}

type FCMSendResult struct {
	Error *string `json:"error"`
}

type FCMSendRequest struct {
	Notification    FCMNotification `json:"notification"`
	Data            FCMData         `json:"data"`
	RegistrationIDs []string        `json:"registration_ids"`
}

type FCMNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

// FCMData is the reminder payload the app reads when a notification is
// opened.
type FCMData struct {
	ImdbID        string `json:"imdbId"`
	EpisodeNumber int    `json:"episodeNumber,omitempty"`
	EpisodeDate   string `json:"episodeDate"`
}

func (c Client) FCMSendNotification(fcmReqBody FCMSendRequest) (FCMSendResponse, error) {
	reqBody, err := json.Marshal(fcmReqBody)
	if err != nil {
		return FCMSendResponse{}, errors.Wrapf(err, "FCMSendNotification: FCMSendRequest JSON marshalling error, req: %+v", fcmReqBody)
	}

	endpoint := c.FCMEndpoint
	if endpoint == "" {
		endpoint = fcmSendURL
	}
	req, err := newRequest(http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return FCMSendResponse{}, errors.Wrapf(err, "FCMSendNotification: error creating HTTP request from body: %s", reqBody)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.FCMKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return FCMSendResponse{}, errors.Wrapf(err, "FCMSendNotification: error doing request: %+v", req)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Logger.Errorf("FCMSendNotification: error closing response body, req: %+v, err: %v", req, err)
		}
	}()

	fcmSendResp := FCMSendResponse{}
	respBody, err := io.ReadAll(http.MaxBytesReader(nil, resp.Body, 300000))
	if err != nil {
		return fcmSendResp, errors.Wrapf(err,
			"FCMSendNotification: error reading FCMSendAPI response body, req: %+v, response body: %s", req, respBody)
	}
	err = json.Unmarshal(respBody, &fcmSendResp)
	return fcmSendResp, errors.Wrapf(err,
		"FCMSendNotification: error unmarshalling FCMSendAPI response body, req: %+v, response body: %s", req, respBody)
}
