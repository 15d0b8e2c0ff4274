package handler

import "net/http"

// SessionRequest is the body of POST /session.
type SessionRequest struct {
	Phone string `json:"phone"`
}

// SessionResponse describes the signed-in user. User is empty when signed out.
type SessionResponse struct {
	User string `json:"user"`
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SessionResponse{User: s.svc.Sessions.Current()})
}

// SignIn handles POST /session. It responds once the user's trips are loaded.
func (s *Server) SignIn(w http.ResponseWriter, r *http.Request) {
	var body SessionRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err)
		return
	}
	user, err := s.svc.Sessions.SignIn(r.Context(), body.Phone)
	if err != nil {
		s.serviceError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{User: user})
}

// SignOut handles DELETE /session.
func (s *Server) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Sessions.SignOut(r.Context()); err != nil {
		s.serviceError(w, r, err, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStatus handles GET /status: who is signed in, whether their data has
// loaded, and the last failed save, if any.
func (s *Server) GetStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Sessions.Status())
}
