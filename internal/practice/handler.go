package practice

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Handler serves the wizard steps. Visiting a later step before an
// earlier one is allowed; the computed steps fall back to defaults.
type Handler struct{}

// NewHandler creates the wizard handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ShowStep1 renders the personal info form with any previously captured
// values as defaults. It also serves /practice.
func (h *Handler) ShowStep1(c *gin.Context) {
	c.HTML(http.StatusOK, "practice_step1.html", gin.H{"Draft": draftFrom(sessions.Default(c))})
}

// SubmitStep1 captures name, address and age exactly as submitted.
func (h *Handler) SubmitStep1(c *gin.Context) {
	session := sessions.Default(c)
	session.Set(keyName, c.PostForm("name"))
	session.Set(keyAddress, c.PostForm("address"))
	session.Set(keyAge, c.PostForm("age"))
	if err := session.Save(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/practice/step2")
}

// ShowStep2 renders the line-of-business form.
func (h *Handler) ShowStep2(c *gin.Context) {
	c.HTML(http.StatusOK, "practice_step2.html", gin.H{"Draft": draftFrom(sessions.Default(c))})
}

// SubmitStep2 captures the line of business, a free string.
func (h *Handler) SubmitStep2(c *gin.Context) {
	session := sessions.Default(c)
	session.Set(keyLOB, c.PostForm("lob"))
	if err := session.Save(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/practice/step3")
}

// ShowStep3 renders the coverage selection form.
func (h *Handler) ShowStep3(c *gin.Context) {
	c.HTML(http.StatusOK, "practice_step3.html", gin.H{"Draft": draftFrom(sessions.Default(c))})
}

// SubmitStep3 captures the multi-select coverage list as one
// comma-joined string.
func (h *Handler) SubmitStep3(c *gin.Context) {
	session := sessions.Default(c)
	session.Set(keyCoverages, strings.Join(c.PostFormArray("coverage"), ", "))
	if err := session.Save(); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/practice/step4")
}

// ShowStep4 computes the premium from whatever the draft holds,
// applying the age and line-of-business defaults, and stores it.
func (h *Handler) ShowStep4(c *gin.Context) {
	session := sessions.Default(c)
	draft := draftFrom(session)

	lob := draft.lobOrDefault()
	premium := Premium(lob, draft.ageOrDefault())

	session.Set(keyPremium, premium)
	if err := session.Save(); err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "practice_step4.html", gin.H{
		"Premium": fmt.Sprintf("%.2f", premium),
		"LOB":     lob,
	})
}

// ShowStep5 issues the policy: a fresh policy number on every view,
// rendered alongside everything captured so far.
func (h *Handler) ShowStep5(c *gin.Context) {
	session := sessions.Default(c)
	policyNumber := PolicyNumber(time.Now())

	session.Set(keyPolicyNumber, policyNumber)
	if err := session.Save(); err != nil {
		serverError(c, err)
		return
	}

	draft := draftFrom(session)
	c.HTML(http.StatusOK, "practice_step5.html", gin.H{
		"Draft":        draft,
		"PolicyNumber": policyNumber,
		"Premium":      fmt.Sprintf("%.2f", draft.Premium),
	})
}

// Reset drops the wizard draft and returns to the dashboard. The login
// session and persisted records are left intact.
func (h *Handler) Reset(c *gin.Context) {
	if err := clearDraft(sessions.Default(c)); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

func serverError(c *gin.Context, err error) {
	log.Printf("practice request failed: %v", err)
	c.String(http.StatusInternalServerError, "internal server error")
	c.Abort()
}
