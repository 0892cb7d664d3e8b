package main

import (
	"bytes"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"net/http"
	"testing"
	"time"
)

const testApiBase = "http://backend.test/api"

const testRequestId = "00000000-0000-4000-8000-000000000001"

type testPortal struct {
	out        *bytes.Buffer
	session    *MemorySessionStore
	router     *ViewRouter
	document   *Document
	notifier   *MockNotifierInterface
	gateway    *ApiGateway
	auth       *AuthModule
	admin      *AdminModule
	teacher    *TeacherModule
	student    *StudentModule
	dashboards *DashboardDispatcher
}

func newTestPortal(t *testing.T) *testPortal {
	portal := &testPortal{
		out:      &bytes.Buffer{},
		session:  &MemorySessionStore{},
		router:   NewViewRouter(),
		document: NewDocument(),
		notifier: NewMockNotifierInterface(t),
	}

	portal.gateway = NewApiGateway(
		testApiBase, &http.Client{}, portal.session, portal.router, portal.notifier, portal.out, nil,
	)
	portal.gateway.newRequestId = func() string { return testRequestId }

	validator := NewFormValidator()
	loads := &LoadCoalescer{}

	portal.admin = &AdminModule{
		out:       portal.out,
		gateway:   portal.gateway,
		document:  portal.document,
		notifier:  portal.notifier,
		validator: validator,
		loads:     loads,
	}
	portal.teacher = &TeacherModule{
		out:       portal.out,
		gateway:   portal.gateway,
		document:  portal.document,
		notifier:  portal.notifier,
		validator: validator,
		loads:     loads,
		now: func() time.Time {
			return time.Date(2024, time.March, 5, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*60*60))
		},
	}
	portal.student = &StudentModule{
		out:       portal.out,
		gateway:   portal.gateway,
		session:   portal.session,
		inspector: NewTokenInspector(portal.out),
		router:    portal.router,
		document:  portal.document,
		notifier:  portal.notifier,
		exporter:  NewMockReportCardExporterInterface(t),
		loads:     loads,
	}
	portal.dashboards = &DashboardDispatcher{
		out:     portal.out,
		session: portal.session,
		router:  portal.router,
		admin:   portal.admin,
		teacher: portal.teacher,
		student: portal.student,
	}
	portal.auth = &AuthModule{
		out:        portal.out,
		gateway:    portal.gateway,
		session:    portal.session,
		router:     portal.router,
		document:   portal.document,
		notifier:   portal.notifier,
		validator:  validator,
		dashboards: portal.dashboards,
	}

	return portal
}

// signIn stores a session and opens the dashboard section without loading anything.
func (portal *testPortal) signIn(t *testing.T, token string, role Role) {
	assert := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	assert(portal.session.Save(token, role))
	assert(portal.router.ShowSection(roleSections[role]))
}

// expectSessionExpired registers the notice the gateway raises when the backend answers 401.
func (portal *testPortal) expectSessionExpired() *mock.Call {
	return portal.notifier.On("Alert", sessionExpiredMessage).Once()
}

func makeTestToken(t *testing.T, subject string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	return token
}
