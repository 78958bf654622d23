package eveapi

import (
	"github.com/matzehuels/evekit/pkg/apikey"
	"github.com/matzehuels/evekit/pkg/errors"
)

// CharacterRow is one character exposed by a key.
type CharacterRow struct {
	CharacterID     int64  `xml:"characterID,attr"`
	CharacterName   string `xml:"characterName,attr"`
	CorporationID   int64  `xml:"corporationID,attr"`
	CorporationName string `xml:"corporationName,attr"`
	AllianceID      int64  `xml:"allianceID,attr"`
	AllianceName    string `xml:"allianceName,attr"`
}

// KeyInfo is the result of account/APIKeyInfo.
type KeyInfo struct {
	Key struct {
		AccessMask int64          `xml:"accessMask,attr"`
		Type       string         `xml:"type,attr"`
		Expires    Time           `xml:"expires,attr"`
		Characters []CharacterRow `xml:"rowset>row"`
	} `xml:"key"`
}

// Info converts the result into the credential facts held by apikey.Key.
func (k *KeyInfo) Info() (*apikey.Info, error) {
	typ, err := apikey.ParseKeyType(k.Key.Type)
	if err != nil {
		return nil, err
	}
	return &apikey.Info{
		AccessMask: k.Key.AccessMask,
		Type:       typ,
		Expires:    k.Key.Expires.Time,
	}, nil
}

// CharacterList is the result of account/Characters.
type CharacterList struct {
	Characters []struct {
		CharacterRow
		Name string `xml:"name,attr"`
	} `xml:"rowset>row"`
}

// Rows returns the listed characters. The endpoint reports the character name
// in a "name" attribute rather than "characterName".
func (l *CharacterList) Rows() []CharacterRow {
	rows := make([]CharacterRow, len(l.Characters))
	for i, c := range l.Characters {
		rows[i] = c.CharacterRow
		if rows[i].CharacterName == "" {
			rows[i].CharacterName = c.Name
		}
	}
	return rows
}

// CharacterInfo is the result of eve/CharacterInfo.
type CharacterInfo struct {
	CharacterID     int64   `xml:"characterID"`
	CharacterName   string  `xml:"characterName"`
	Race            string  `xml:"race"`
	Bloodline       string  `xml:"bloodline"`
	AccountBalance  float64 `xml:"accountBalance"`
	SkillPoints     int64   `xml:"skillPoints"`
	ShipName        string  `xml:"shipName"`
	ShipTypeName    string  `xml:"shipTypeName"`
	CorporationID   int64   `xml:"corporationID"`
	Corporation     string  `xml:"corporation"`
	CorporationDate Time    `xml:"corporationDate"`
	AllianceID      int64   `xml:"allianceID"`
	Alliance        string  `xml:"alliance"`
	SecurityStatus  float64 `xml:"securityStatus"`
	LastLocation    string  `xml:"lastKnownLocation"`
}

// AccountBalance is the result of char/AccountBalance.
type AccountBalance struct {
	Accounts []struct {
		AccountID  int64   `xml:"accountID,attr"`
		AccountKey int     `xml:"accountKey,attr"`
		Balance    float64 `xml:"balance,attr"`
	} `xml:"rowset>row"`
}

// Wallet returns the balance of the wallet with the given account key.
func (b *AccountBalance) Wallet(accountKey int) (float64, error) {
	for _, a := range b.Accounts {
		if a.AccountKey == accountKey {
			return a.Balance, nil
		}
	}
	return 0, errors.New(errors.ErrCodeNotFound, "no wallet with account key %d", accountKey)
}

// Skill is one trained skill.
type Skill struct {
	TypeID      int64 `xml:"typeID,attr"`
	SkillPoints int64 `xml:"skillpoints,attr"`
	Level       int   `xml:"level,attr"`
	Published   int   `xml:"published,attr"`
}

// Attributes are the five character attributes.
type Attributes struct {
	Intelligence int `xml:"intelligence"`
	Memory       int `xml:"memory"`
	Charisma     int `xml:"charisma"`
	Perception   int `xml:"perception"`
	Willpower    int `xml:"willpower"`
}

// CharacterSheet is the result of char/CharacterSheet.
type CharacterSheet struct {
	CharacterID      int64      `xml:"characterID"`
	Name             string     `xml:"name"`
	DateOfBirth      Time       `xml:"DoB"`
	Race             string     `xml:"race"`
	Bloodline        string     `xml:"bloodLine"`
	Ancestry         string     `xml:"ancestry"`
	Gender           string     `xml:"gender"`
	CorporationName  string     `xml:"corporationName"`
	CorporationID    int64      `xml:"corporationID"`
	AllianceName     string     `xml:"allianceName"`
	AllianceID       int64      `xml:"allianceID"`
	CloneName        string     `xml:"cloneName"`
	CloneSkillPoints int64      `xml:"cloneSkillPoints"`
	Balance          float64    `xml:"balance"`
	Attributes       Attributes `xml:"attributes"`
	Rowsets          []struct {
		Name   string  `xml:"name,attr"`
		Skills []Skill `xml:"row"`
	} `xml:"rowset"`
}

// Skills returns the rows of the "skills" rowset.
func (s *CharacterSheet) Skills() []Skill {
	for _, rs := range s.Rowsets {
		if rs.Name == "skills" {
			return rs.Skills
		}
	}
	return nil
}

// TotalSkillPoints sums the skill points of all trained skills.
func (s *CharacterSheet) TotalSkillPoints() int64 {
	var total int64
	for _, sk := range s.Skills() {
		total += sk.SkillPoints
	}
	return total
}

// QueuedSkill is one entry of the training queue.
type QueuedSkill struct {
	Position  int   `xml:"queuePosition,attr"`
	TypeID    int64 `xml:"typeID,attr"`
	Level     int   `xml:"level,attr"`
	StartSP   int64 `xml:"startSP,attr"`
	EndSP     int64 `xml:"endSP,attr"`
	StartTime Time  `xml:"startTime,attr"`
	EndTime   Time  `xml:"endTime,attr"`
}

// SkillQueue is the result of char/SkillQueue.
type SkillQueue struct {
	Skills []QueuedSkill `xml:"rowset>row"`
}

// SkillInTraining is the result of char/SkillInTraining.
type SkillInTraining struct {
	CurrentTQTime Time  `xml:"currentTQTime"`
	EndTime       Time  `xml:"trainingEndTime"`
	StartTime     Time  `xml:"trainingStartTime"`
	TypeID        int64 `xml:"trainingTypeID"`
	StartSP       int64 `xml:"trainingStartSP"`
	DestinationSP int64 `xml:"trainingDestinationSP"`
	ToLevel       int   `xml:"trainingToLevel"`
	InTraining    int   `xml:"skillInTraining"`
}

// Training reports whether a skill is currently training.
func (s *SkillInTraining) Training() bool { return s.InTraining != 0 }

// JournalEntry is one wallet journal row.
type JournalEntry struct {
	Date       Time    `xml:"date,attr"`
	RefID      int64   `xml:"refID,attr"`
	RefTypeID  int     `xml:"refTypeID,attr"`
	OwnerName1 string  `xml:"ownerName1,attr"`
	OwnerID1   int64   `xml:"ownerID1,attr"`
	OwnerName2 string  `xml:"ownerName2,attr"`
	OwnerID2   int64   `xml:"ownerID2,attr"`
	ArgName1   string  `xml:"argName1,attr"`
	Amount     float64 `xml:"amount,attr"`
	Balance    float64 `xml:"balance,attr"`
	Reason     string  `xml:"reason,attr"`
}

// WalletJournal is the result of char/WalletJournal.
type WalletJournal struct {
	Entries []JournalEntry `xml:"rowset>row"`
}
