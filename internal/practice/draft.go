// Package practice implements the five-step insurance quote wizard used
// as an automation practice target. All draft state lives in the
// session; nothing is persisted.
package practice

import (
	"strconv"

	"github.com/gin-contrib/sessions"
)

// Session keys for the wizard draft. Every key carries the practice_
// prefix so Clear can drop the draft without touching the login.
const (
	keyName         = "practice_name"
	keyAddress      = "practice_address"
	keyAge          = "practice_age"
	keyLOB          = "practice_lob"
	keyCoverages    = "practice_coverages"
	keyPremium      = "practice_premium"
	keyPolicyNumber = "practice_policy_number"
)

var draftKeys = []string{
	keyName, keyAddress, keyAge, keyLOB, keyCoverages, keyPremium, keyPolicyNumber,
}

// Defaults applied by the computed steps when earlier steps were
// skipped. Step order is deliberately not enforced.
const (
	defaultAge = 30
	defaultLOB = "Auto"
)

// Draft is the wizard state captured so far. Fields hold exactly what
// was submitted; steps 4 and 5 apply defaults for anything missing.
type Draft struct {
	Name         string
	Address      string
	Age          string
	LOB          string
	Coverages    string
	Premium      float64
	PolicyNumber string
}

// draftFrom reads the draft out of the session, leaving zero values for
// fields no step has captured yet.
func draftFrom(session sessions.Session) Draft {
	var d Draft
	d.Name, _ = session.Get(keyName).(string)
	d.Address, _ = session.Get(keyAddress).(string)
	d.Age, _ = session.Get(keyAge).(string)
	d.LOB, _ = session.Get(keyLOB).(string)
	d.Coverages, _ = session.Get(keyCoverages).(string)
	d.Premium, _ = session.Get(keyPremium).(float64)
	d.PolicyNumber, _ = session.Get(keyPolicyNumber).(string)
	return d
}

// ageOrDefault parses the captured age, falling back to the default
// when it is absent or not a number.
func (d Draft) ageOrDefault() int {
	age, err := strconv.Atoi(d.Age)
	if err != nil {
		return defaultAge
	}
	return age
}

// lobOrDefault returns the captured line of business, or the default.
func (d Draft) lobOrDefault() string {
	if d.LOB == "" {
		return defaultLOB
	}
	return d.LOB
}

// clearDraft removes every wizard key, leaving the login untouched.
func clearDraft(session sessions.Session) error {
	for _, key := range draftKeys {
		session.Delete(key)
	}
	return session.Save()
}
