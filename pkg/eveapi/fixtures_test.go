package eveapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const (
	testKeyID  = 3648123
	testVCode  = "GkvnYbXqo8bPv9Az5LNGTM0VHDFSSzVbMS3DPlAaJp5GPgyRbTGR1HhgqXbtZxPd"
	testCharID = 1643072492
)

const keyInfoXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <key accessMask="4" type="Character" expires="">
      <rowset name="characters" key="characterID" columns="characterID,characterName,corporationID,corporationName,allianceID,allianceName">
        <row characterID="1643072492" characterName="Catari Taga" corporationID="1000168" corporationName="Federal Navy Academy" allianceID="0" allianceName="" />
      </rowset>
    </key>
  </result>
  <cachedUntil>2014-11-24 12:05:00</cachedUntil>
</eveapi>`

const charactersXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <rowset name="characters" key="characterID" columns="name,characterID,corporationName,corporationID">
      <row name="Catari Taga" characterID="1643072492" corporationName="Federal Navy Academy" corporationID="1000168" />
      <row name="Apollo Gabriel" characterID="90052123" corporationName="Science and Trade Institute" corporationID="1000045" />
    </rowset>
  </result>
  <cachedUntil>2014-11-24 13:00:00</cachedUntil>
</eveapi>`

const accountBalanceXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <rowset name="accounts" key="accountID" columns="accountID,accountKey,balance">
      <row accountID="4807144" accountKey="1000" balance="209127923.31" />
    </rowset>
  </result>
  <cachedUntil>2014-11-24 12:15:00</cachedUntil>
</eveapi>`

const characterSheetXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <characterID>1643072492</characterID>
    <name>Catari Taga</name>
    <DoB>2010-01-15 15:26:00</DoB>
    <race>Gallente</race>
    <bloodLine>Intaki</bloodLine>
    <ancestry>Mystics</ancestry>
    <gender>Female</gender>
    <corporationName>Federal Navy Academy</corporationName>
    <corporationID>1000168</corporationID>
    <cloneName>Clone Grade Alpha</cloneName>
    <cloneSkillPoints>900000</cloneSkillPoints>
    <balance>209127923.31</balance>
    <attributes>
      <intelligence>20</intelligence>
      <memory>25</memory>
      <charisma>23</charisma>
      <perception>16</perception>
      <willpower>15</willpower>
    </attributes>
    <rowset name="skills" key="typeID" columns="typeID,skillpoints,level,published">
      <row typeID="3431" skillpoints="8000" level="3" published="1" />
      <row typeID="3413" skillpoints="500" level="1" published="1" />
    </rowset>
    <rowset name="certificates" key="certificateID" columns="certificateID" />
  </result>
  <cachedUntil>2014-11-24 13:00:00</cachedUntil>
</eveapi>`

const skillQueueXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <rowset name="skillqueue" key="queuePosition" columns="queuePosition,typeID,level,startSP,endSP,startTime,endTime">
      <row queuePosition="0" typeID="11441" level="3" startSP="7072" endSP="40000" startTime="2014-11-24 10:00:00" endTime="2014-11-25 08:30:00" />
      <row queuePosition="1" typeID="20533" level="4" startSP="112000" endSP="633542" startTime="2014-11-25 08:30:00" endTime="2014-12-03 17:10:00" />
    </rowset>
  </result>
  <cachedUntil>2014-11-24 12:10:00</cachedUntil>
</eveapi>`

const skillInTrainingXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <currentTQTime offset="0">2014-11-24 12:00:03</currentTQTime>
    <trainingEndTime>2014-11-25 08:30:00</trainingEndTime>
    <trainingStartTime>2014-11-24 10:00:00</trainingStartTime>
    <trainingTypeID>11441</trainingTypeID>
    <trainingStartSP>7072</trainingStartSP>
    <trainingDestinationSP>40000</trainingDestinationSP>
    <trainingToLevel>3</trainingToLevel>
    <skillInTraining>1</skillInTraining>
  </result>
  <cachedUntil>2014-11-24 12:10:00</cachedUntil>
</eveapi>`

const walletJournalXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <rowset name="transactions" key="refID" columns="date,refID,refTypeID,ownerName1,ownerID1,ownerName2,ownerID2,argName1,argID1,amount,balance,reason">
      <row date="2014-11-23 20:02:00" refID="1578932679" refTypeID="54" ownerName1="Catari Taga" ownerID1="1643072492" ownerName2="Secure Commerce Commission" ownerID2="1000132" argName1="" argID1="0" amount="-8396.99" balance="209127923.31" reason="" />
    </rowset>
  </result>
  <cachedUntil>2014-11-24 12:30:00</cachedUntil>
</eveapi>`

const characterInfoXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <result>
    <characterID>1643072492</characterID>
    <characterName>Catari Taga</characterName>
    <race>Gallente</race>
    <bloodline>Intaki</bloodline>
    <accountBalance>209127923.31</accountBalance>
    <skillPoints>4567890</skillPoints>
    <shipName>Catari's Helios</shipName>
    <shipTypeName>Helios</shipTypeName>
    <corporationID>1000168</corporationID>
    <corporation>Federal Navy Academy</corporation>
    <corporationDate>2010-01-15 15:26:00</corporationDate>
    <securityStatus>2.4</securityStatus>
    <lastKnownLocation>Dodixie</lastKnownLocation>
  </result>
  <cachedUntil>2014-11-24 13:00:00</cachedUntil>
</eveapi>`

const errorXML = `<?xml version='1.0' encoding='UTF-8'?>
<eveapi version="2">
  <currentTime>2014-11-24 12:00:00</currentTime>
  <error code="222">Key has expired. Contact key owner for access renewal.</error>
  <cachedUntil>2014-11-25 12:00:00</cachedUntil>
</eveapi>`

// fakeAPI serves fixtures by path and records every request.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter, r *http.Request)
	hits   map[string]int
	query  map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{
		routes: make(map[string]func(http.ResponseWriter, *http.Request)),
		hits:   make(map[string]int),
		query:  make(map[string]string),
	}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	return f, server
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.query[r.URL.Path] = r.URL.RawQuery
	h, ok := f.routes[r.URL.Path]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeAPI) xml(path, body string) {
	f.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(body))
	})
}

func (f *fakeAPI) status(path string, code int) {
	f.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func (f *fakeAPI) handle(path string, h func(http.ResponseWriter, *http.Request)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

func (f *fakeAPI) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) lastQuery(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query[path]
}
