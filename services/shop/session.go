package shop

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/services/auth"
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/checkout"
)

// sweepInterval bounds how often the registry looks for idle sessions.
const sweepInterval = time.Minute

// session is the state of one browser. It is dropped once idle for longer than the idle timeout.
type session struct {
	uid      string
	cart     *cart.Cart
	auth     auth.Session
	checkout *checkout.Checkout
	lastSeen time.Time
}

type sessionRegistry struct {
	sync.Mutex
	sessions    map[string]*session
	idleTimeout time.Duration
	lastSweep   time.Time
}

func newSessionRegistry(idleTimeout time.Duration) *sessionRegistry {
	return &sessionRegistry{
		sessions:    map[string]*session{},
		idleTimeout: idleTimeout,
	}
}

// get returns a live session and marks it as seen. An idle session is dropped and reported as absent.
func (r *sessionRegistry) get(uid string, now time.Time) (*session, bool) {
	r.Lock()
	defer r.Unlock()

	sess, found := r.sessions[uid]
	if !found {
		return nil, false
	}
	if r.isIdle(sess, now) {
		delete(r.sessions, uid)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (r *sessionRegistry) put(sess *session, now time.Time) {
	r.Lock()
	defer r.Unlock()

	if now.Sub(r.lastSweep) >= sweepInterval {
		r.sweep(now)
	}

	sess.lastSeen = now
	r.sessions[sess.uid] = sess
}

func (r *sessionRegistry) size() int {
	r.Lock()
	defer r.Unlock()

	return len(r.sessions)
}

func (r *sessionRegistry) sweep(now time.Time) {
	for uid, sess := range r.sessions {
		if r.isIdle(sess, now) {
			delete(r.sessions, uid)
		}
	}
	r.lastSweep = now
}

func (r *sessionRegistry) isIdle(sess *session, now time.Time) bool {
	return now.Sub(sess.lastSeen) > r.idleTimeout
}

// sessionFromRequest returns the session of the cookie. Unknown or absent cookies get a fresh session.
func (s *webService) sessionFromRequest(w http.ResponseWriter, r *http.Request) (context.Context, *session) {
	c := mycontext.ContextFromHTTPRequest(r)

	cookie, err := r.Cookie(s.cookieName)
	if err == nil {
		sess, found := s.sessions.get(cookie.Value, s.nower.Now())
		if found {
			return mycontext.WithSessionUID(c, sess.uid), sess
		}
	}

	sess := s.newSession(s.uuider.Create())
	s.sessions.put(sess, s.nower.Now())

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.uid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return mycontext.WithSessionUID(c, sess.uid), sess
}

func (s *webService) newSession(uid string) *session {
	sessionCart := cart.New()
	sessionAuth := s.auth.Session(uid)

	return &session{
		uid:      uid,
		cart:     sessionCart,
		auth:     sessionAuth,
		checkout: s.checkouts.ForSession(uid, sessionCart, sessionAuth),
	}
}
