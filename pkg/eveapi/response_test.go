package eveapi

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/matzehuels/evekit/pkg/errors"
)

func TestResponseDecode(t *testing.T) {
	var resp Response[AccountBalance]
	if err := xml.Unmarshal([]byte(accountBalanceXML), &resp); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if resp.Version != 2 {
		t.Errorf("Version = %d, want 2", resp.Version)
	}
	if resp.Err() != nil {
		t.Errorf("Err() = %v, want nil", resp.Err())
	}
	if got := resp.TTL(); got != 15*time.Minute {
		t.Errorf("TTL() = %v, want 15m", got)
	}
	bal, err := resp.Result.Wallet(AccountKey)
	if err != nil || bal != 209127923.31 {
		t.Errorf("Wallet() = %v, %v", bal, err)
	}
	if _, err := resp.Result.Wallet(1001); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Wallet(1001) error = %v, want NOT_FOUND", err)
	}
}

func TestResponseErrorElement(t *testing.T) {
	var resp Response[KeyInfo]
	if err := xml.Unmarshal([]byte(errorXML), &resp); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != 222 {
		t.Fatalf("Error = %+v, want code 222", resp.Error)
	}
	if err := resp.Err(); !errors.Is(err, errors.ErrCodeUnexpected) {
		t.Errorf("Err() = %v, want UNEXPECTED_FAILURE", err)
	}
}

func TestResponseTTL(t *testing.T) {
	at := func(s string) Time {
		v, err := parseTime(s)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	tests := []struct {
		name string
		now  Time
		till Time
		want time.Duration
	}{
		{"fresh", at("2014-11-24 12:00:00"), at("2014-11-24 13:00:00"), time.Hour},
		{"stale", at("2014-11-24 12:00:00"), at("2014-11-24 11:00:00"), 0},
		{"missing cachedUntil", at("2014-11-24 12:00:00"), Time{}, 0},
		{"missing currentTime", Time{}, at("2014-11-24 12:00:00"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Response[struct{}]{CurrentTime: tt.now, CachedUntil: tt.till}
			if got := r.TTL(); got != tt.want {
				t.Errorf("TTL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelsDecode(t *testing.T) {
	var sheet Response[CharacterSheet]
	if err := xml.Unmarshal([]byte(characterSheetXML), &sheet); err != nil {
		t.Fatalf("CharacterSheet: %v", err)
	}
	if sheet.Result.Name != "Catari Taga" || sheet.Result.Attributes.Memory != 25 {
		t.Errorf("CharacterSheet = %+v", sheet.Result)
	}
	if n := len(sheet.Result.Skills()); n != 2 {
		t.Errorf("Skills() = %d rows, want 2", n)
	}
	if got := sheet.Result.TotalSkillPoints(); got != 8500 {
		t.Errorf("TotalSkillPoints() = %d, want 8500", got)
	}

	var queue Response[SkillQueue]
	if err := xml.Unmarshal([]byte(skillQueueXML), &queue); err != nil {
		t.Fatalf("SkillQueue: %v", err)
	}
	if len(queue.Result.Skills) != 2 || queue.Result.Skills[1].Level != 4 {
		t.Errorf("SkillQueue = %+v", queue.Result)
	}
	if want := time.Date(2014, 11, 25, 8, 30, 0, 0, time.UTC); !queue.Result.Skills[0].EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", queue.Result.Skills[0].EndTime, want)
	}

	var training Response[SkillInTraining]
	if err := xml.Unmarshal([]byte(skillInTrainingXML), &training); err != nil {
		t.Fatalf("SkillInTraining: %v", err)
	}
	if !training.Result.Training() || training.Result.ToLevel != 3 {
		t.Errorf("SkillInTraining = %+v", training.Result)
	}

	var chars Response[CharacterList]
	if err := xml.Unmarshal([]byte(charactersXML), &chars); err != nil {
		t.Fatalf("CharacterList: %v", err)
	}
	rows := chars.Result.Rows()
	if len(rows) != 2 || rows[1].CharacterName != "Apollo Gabriel" || rows[1].CharacterID != 90052123 {
		t.Errorf("Rows() = %+v", rows)
	}

	var info Response[CharacterInfo]
	if err := xml.Unmarshal([]byte(characterInfoXML), &info); err != nil {
		t.Fatalf("CharacterInfo: %v", err)
	}
	if info.Result.ShipTypeName != "Helios" || info.Result.SecurityStatus != 2.4 {
		t.Errorf("CharacterInfo = %+v", info.Result)
	}
}

func TestKeyInfoConversion(t *testing.T) {
	var resp Response[KeyInfo]
	if err := xml.Unmarshal([]byte(keyInfoXML), &resp); err != nil {
		t.Fatal(err)
	}
	info, err := resp.Result.Info()
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if info.AccessMask != 4 || info.Type.String() != "Character" || !info.NeverExpires() {
		t.Errorf("Info() = %+v", info)
	}
	if n := len(resp.Result.Key.Characters); n != 1 {
		t.Errorf("characters = %d, want 1", n)
	}

	resp.Result.Key.Type = "Alliance"
	if _, err := resp.Result.Info(); !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("Info() error = %v, want DECODE_FAILURE", err)
	}
}
