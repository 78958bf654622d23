package eveapi

import (
	"context"

	"github.com/matzehuels/evekit/pkg/apikey"
	"github.com/matzehuels/evekit/pkg/dispatch"
	"github.com/matzehuels/evekit/pkg/errors"
)

const (
	pathAPIKeyInfo = "account/APIKeyInfo.xml.aspx"
	pathCharacters = "account/Characters.xml.aspx"
)

// APIKeyInfoAsync starts an account/APIKeyInfo request.
func (c *Client) APIKeyInfoAsync(ctx context.Context, keyID int64, vCode string) *dispatch.Call[*Response[KeyInfo]] {
	desc, err := c.keyDescriptor(pathAPIKeyInfo, keyID, vCode)
	return dispatchAsync[KeyInfo](ctx, c, desc, err)
}

// APIKeyInfo returns the access mask, type, expiry and characters of a key.
func (c *Client) APIKeyInfo(ctx context.Context, keyID int64, vCode string) (*Response[KeyInfo], error) {
	desc, err := c.keyDescriptor(pathAPIKeyInfo, keyID, vCode)
	return dispatchBlocking[KeyInfo](ctx, c, desc, err)
}

// FetchKeyInfo implements apikey.Fetcher. It always asks the server.
func (c *Client) FetchKeyInfo(ctx context.Context, keyID int64, vCode string) (*apikey.Info, error) {
	resp, err := c.APIKeyInfo(ctx, keyID, vCode)
	if err != nil {
		return nil, err
	}
	info, err := resp.Result.Info()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "key %d", keyID)
	}
	c.logger.Debug("loaded key info", "key", keyID, "type", info.Type, "mask", info.AccessMask)
	return info, nil
}

// CharacterListAsync starts an account/Characters request.
func (c *Client) CharacterListAsync(ctx context.Context, key *apikey.Key) *dispatch.Call[*Response[CharacterList]] {
	desc, err := c.keyDescriptor(pathCharacters, key.ID(), key.VCode())
	return dispatchAsync[CharacterList](ctx, c, desc, err)
}

// CharacterList returns the raw account/Characters answer.
func (c *Client) CharacterList(ctx context.Context, key *apikey.Key) (*Response[CharacterList], error) {
	desc, err := c.keyDescriptor(pathCharacters, key.ID(), key.VCode())
	return dispatchBlocking[CharacterList](ctx, c, desc, err)
}

// Characters returns the characters exposed by key. The key is validated
// first; a rejected key yields INVALID_KEY without listing.
func (c *Client) Characters(ctx context.Context, key *apikey.Key) ([]*Character, error) {
	valid, err := key.IsValid(ctx)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, errors.New(errors.ErrCodeInvalidKey, "%s was rejected by the remote service", key)
	}

	resp, err := c.CharacterList(ctx, key)
	if err != nil {
		return nil, err
	}
	rows := resp.Result.Rows()
	chars := make([]*Character, len(rows))
	for i, r := range rows {
		chars[i] = c.newCharacter(key, r)
	}
	return chars, nil
}

// Character returns the character with the given ID if key exposes it.
func (c *Client) Character(ctx context.Context, key *apikey.Key, characterID int64) (*Character, error) {
	chars, err := c.Characters(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, ch := range chars {
		if ch.ID == characterID {
			return ch, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "%s does not expose character %d", key, characterID)
}
