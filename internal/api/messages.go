package api

import "github.com/dmitrijs2005/credbridge/internal/server/models"

type RegisterPublicKeyRequest struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
}

type RegisterPublicKeyResponse struct {
	PublicKey *models.PublicKey `json:"publicKey"`
}

type ListPublicKeysRequest struct{}

type ListPublicKeysResponse struct {
	PublicKeys []*models.PublicKey `json:"publicKeys"`
}

type RevokePublicKeyRequest struct {
	Key string `json:"key"`
}

type RevokePublicKeyResponse struct{}

type CreateTokenRequest struct {
	Bucket    string `json:"bucket"`
	Operation string `json:"operation"`
}

type CreateTokenResponse struct {
	Token *models.AccessToken `json:"token"`
}

type LookupTokenRequest struct {
	Token string `json:"token"`
}

type LookupTokenResponse struct {
	Token *models.AccessToken `json:"token"`
}

type RevokeTokenRequest struct {
	Token string `json:"token"`
}

type RevokeTokenResponse struct{}

// RedeemTokenRequest exchanges a bearer token for a presigned URL to one
// object of the token's bucket.
type RedeemTokenRequest struct {
	Token     string `json:"token"`
	ObjectKey string `json:"objectKey"`
}

type RedeemTokenResponse struct {
	Grant *models.ObjectGrant `json:"grant"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RecordStatisticRequest struct {
	Statistic *models.StorageStatistic `json:"statistic"`
}

type RecordStatisticResponse struct{}

type ListStatisticsRequest struct {
	Bucket string `json:"bucket"`
}

type ListStatisticsResponse struct {
	Statistics []*models.StorageStatistic `json:"statistics"`
}
