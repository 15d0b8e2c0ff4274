package handler

import "net/http"

// PhotoResponse is the body of GET /trips/{tripId}/photo. URL is empty when
// no image is available.
type PhotoResponse struct {
	URL string `json:"url"`
}

// GetTripPhoto handles GET /trips/{tripId}/photo.
// Pass ?current= with the URL on screen to get a different one.
func (s *Server) GetTripPhoto(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathParam(r, "tripId")
	if err != nil {
		requestError(w, err)
		return
	}
	var current *string
	if err := queryParam(r, "current", &current); err != nil {
		requestError(w, err)
		return
	}
	cur := ""
	if current != nil {
		cur = *current
	}

	url, err := s.svc.Photos.HeroImage(r.Context(), tripID, cur)
	if err != nil {
		s.serviceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, PhotoResponse{URL: url})
}
