package eveapi

import (
	"context"

	"github.com/matzehuels/evekit/pkg/apikey"
	"github.com/matzehuels/evekit/pkg/dispatch"
)

// AccountKey is the wallet account key of every character.
const AccountKey = 1000

// Access mask bits of the character endpoints.
const (
	MaskAccountBalance  int64 = 1 << 0
	MaskCharacterSheet  int64 = 1 << 3
	MaskSkillInTraining int64 = 1 << 17
	MaskSkillQueue      int64 = 1 << 18
	MaskWalletJournal   int64 = 1 << 21
	MaskCharacterInfo   int64 = 1 << 23
)

const (
	pathCharacterInfo   = "eve/CharacterInfo.xml.aspx"
	pathAccountBalance  = "char/AccountBalance.xml.aspx"
	pathCharacterSheet  = "char/CharacterSheet.xml.aspx"
	pathSkillQueue      = "char/SkillQueue.xml.aspx"
	pathSkillInTraining = "char/SkillInTraining.xml.aspx"
	pathWalletJournal   = "char/WalletJournal.xml.aspx"
)

// Character is one character reachable through a key. Create it with
// Client.Characters.
type Character struct {
	Key             *apikey.Key
	ID              int64
	Name            string
	CorporationID   int64
	CorporationName string

	client *Client
}

func (c *Client) newCharacter(key *apikey.Key, r CharacterRow) *Character {
	return &Character{
		Key:             key,
		ID:              r.CharacterID,
		Name:            r.CharacterName,
		CorporationID:   r.CorporationID,
		CorporationName: r.CorporationName,
		client:          c,
	}
}

func (ch *Character) descriptor(relPath string, kv ...any) (dispatch.Descriptor, error) {
	params := append([]any{"characterID", ch.ID}, kv...)
	return ch.client.keyDescriptor(relPath, ch.Key.ID(), ch.Key.VCode(), params...)
}

// InfoAsync starts an eve/CharacterInfo request.
func (ch *Character) InfoAsync(ctx context.Context) *dispatch.Call[*Response[CharacterInfo]] {
	desc, err := ch.descriptor(pathCharacterInfo)
	return dispatchAsync[CharacterInfo](ctx, ch.client, desc, err)
}

// Info returns general information about the character.
func (ch *Character) Info(ctx context.Context) (*Response[CharacterInfo], error) {
	desc, err := ch.descriptor(pathCharacterInfo)
	return cached[CharacterInfo](ctx, ch.client, desc, err)
}

// AccountBalanceAsync starts a char/AccountBalance request.
func (ch *Character) AccountBalanceAsync(ctx context.Context) *dispatch.Call[*Response[AccountBalance]] {
	desc, err := ch.descriptor(pathAccountBalance)
	return dispatchAsync[AccountBalance](ctx, ch.client, desc, err)
}

// AccountBalance returns the wallet balances of the character.
func (ch *Character) AccountBalance(ctx context.Context) (*Response[AccountBalance], error) {
	desc, err := ch.descriptor(pathAccountBalance)
	return cached[AccountBalance](ctx, ch.client, desc, err)
}

// CharacterSheetAsync starts a char/CharacterSheet request.
func (ch *Character) CharacterSheetAsync(ctx context.Context) *dispatch.Call[*Response[CharacterSheet]] {
	desc, err := ch.descriptor(pathCharacterSheet)
	return dispatchAsync[CharacterSheet](ctx, ch.client, desc, err)
}

// CharacterSheet returns attributes, clone and skills of the character.
func (ch *Character) CharacterSheet(ctx context.Context) (*Response[CharacterSheet], error) {
	desc, err := ch.descriptor(pathCharacterSheet)
	return cached[CharacterSheet](ctx, ch.client, desc, err)
}

// SkillQueueAsync starts a char/SkillQueue request.
func (ch *Character) SkillQueueAsync(ctx context.Context) *dispatch.Call[*Response[SkillQueue]] {
	desc, err := ch.descriptor(pathSkillQueue)
	return dispatchAsync[SkillQueue](ctx, ch.client, desc, err)
}

// SkillQueue returns the training queue.
func (ch *Character) SkillQueue(ctx context.Context) (*Response[SkillQueue], error) {
	desc, err := ch.descriptor(pathSkillQueue)
	return cached[SkillQueue](ctx, ch.client, desc, err)
}

// SkillInTrainingAsync starts a char/SkillInTraining request.
func (ch *Character) SkillInTrainingAsync(ctx context.Context) *dispatch.Call[*Response[SkillInTraining]] {
	desc, err := ch.descriptor(pathSkillInTraining)
	return dispatchAsync[SkillInTraining](ctx, ch.client, desc, err)
}

// SkillInTraining returns the skill currently in training, if any.
func (ch *Character) SkillInTraining(ctx context.Context) (*Response[SkillInTraining], error) {
	desc, err := ch.descriptor(pathSkillInTraining)
	return cached[SkillInTraining](ctx, ch.client, desc, err)
}

func (ch *Character) journalDescriptor(rowCount int, fromID int64) (dispatch.Descriptor, error) {
	if fromID > 0 {
		return ch.descriptor(pathWalletJournal, "rowCount", rowCount, "fromID", fromID)
	}
	return ch.descriptor(pathWalletJournal, "rowCount", rowCount)
}

// WalletJournalAsync starts a char/WalletJournal request.
func (ch *Character) WalletJournalAsync(ctx context.Context, rowCount int, fromID int64) *dispatch.Call[*Response[WalletJournal]] {
	desc, err := ch.journalDescriptor(rowCount, fromID)
	return dispatchAsync[WalletJournal](ctx, ch.client, desc, err)
}

// WalletJournal returns up to rowCount journal entries. A positive fromID
// walks backwards from that entry.
func (ch *Character) WalletJournal(ctx context.Context, rowCount int, fromID int64) (*Response[WalletJournal], error) {
	desc, err := ch.journalDescriptor(rowCount, fromID)
	return cached[WalletJournal](ctx, ch.client, desc, err)
}
