package restx

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// EntitlementOwnerType selects who a test entitlement is granted to.
type EntitlementOwnerType int

const (
	EntitlementOwnerGuild EntitlementOwnerType = 1
	EntitlementOwnerUser  EntitlementOwnerType = 2
)

// Entitlement grants a user or guild access to a premium offering.
type Entitlement struct {
	ID            string     `json:"id"`
	SKUID         string     `json:"sku_id"`
	ApplicationID string     `json:"application_id"`
	UserID        string     `json:"user_id,omitempty"`
	GuildID       string     `json:"guild_id,omitempty"`
	Type          int        `json:"type"`
	Deleted       bool       `json:"deleted"`
	Consumed      bool       `json:"consumed,omitempty"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
}

// EntitlementsParams filters an entitlement listing; zero values are
// omitted.
type EntitlementsParams struct {
	UserID       string
	SKUIDs       []string
	Before       string
	After        string
	Limit        int
	GuildID      string
	ExcludeEnded bool
}

func entitlementsEndpoint(appID string) string {
	return discordgo.EndpointAPI + "applications/" + appID + "/entitlements"
}

// Entitlements lists an application's entitlements.
func (c *Client) Entitlements(appID string, params *EntitlementsParams) ([]*Entitlement, error) {
	endpoint := entitlementsEndpoint(appID)
	query := url.Values{}
	if params != nil {
		if params.UserID != "" {
			query.Set("user_id", params.UserID)
		}
		for _, sku := range params.SKUIDs {
			query.Add("sku_ids", sku)
		}
		if params.Before != "" {
			query.Set("before", params.Before)
		}
		if params.After != "" {
			query.Set("after", params.After)
		}
		if params.Limit > 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.GuildID != "" {
			query.Set("guild_id", params.GuildID)
		}
		if params.ExcludeEnded {
			query.Set("exclude_ended", "true")
		}
	}
	full := endpoint
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	var entitlements []*Entitlement
	return entitlements, c.get(full, endpoint, &entitlements)
}

// EntitlementConsume marks a consumable entitlement as used.
func (c *Client) EntitlementConsume(appID, entitlementID string) error {
	endpoint := entitlementsEndpoint(appID) + "/" + entitlementID + "/consume"
	return c.do(http.MethodPost, endpoint, entitlementsEndpoint(appID), nil, nil)
}

// EntitlementTestCreate grants a test entitlement to a user or guild so
// premium flows can be exercised without a purchase.
func (c *Client) EntitlementTestCreate(appID, skuID, ownerID string, ownerType EntitlementOwnerType) (*Entitlement, error) {
	body := struct {
		SKUID     string               `json:"sku_id"`
		OwnerID   string               `json:"owner_id"`
		OwnerType EntitlementOwnerType `json:"owner_type"`
	}{SKUID: skuID, OwnerID: ownerID, OwnerType: ownerType}
	entitlement := new(Entitlement)
	endpoint := entitlementsEndpoint(appID)
	return entitlement, c.do(http.MethodPost, endpoint, endpoint, body, entitlement)
}

// EntitlementTestDelete removes a test entitlement.
func (c *Client) EntitlementTestDelete(appID, entitlementID string) error {
	endpoint := entitlementsEndpoint(appID) + "/" + entitlementID
	return c.do(http.MethodDelete, endpoint, entitlementsEndpoint(appID), nil, nil)
}
