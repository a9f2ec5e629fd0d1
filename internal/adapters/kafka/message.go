package kafkabus

import (
	"encoding/json"
	"fmt"

	"hotel_search/internal/domain"
)

// message is the UTF-8 JSON schema on the topic. Dates travel in their
// textual dd/MM/yyyy form; domain.Date does the conversion.
type message struct {
	SearchID string      `json:"searchId"`
	HotelID  string      `json:"hotelId"`
	CheckIn  domain.Date `json:"checkIn"`
	CheckOut domain.Date `json:"checkOut"`
	Ages     []int       `json:"ages"`
	Count    int         `json:"count"`
}

func encodeSearch(s domain.Search) ([]byte, error) {
	return json.Marshal(message{
		SearchID: s.SearchID,
		HotelID:  s.HotelID,
		CheckIn:  s.CheckIn,
		CheckOut: s.CheckOut,
		Ages:     s.Ages,
		Count:    s.Count,
	})
}

// decodeSearch turns a payload back into a record. The decoder's own error
// text is kept verbatim inside ErrConsume so operators can diagnose a
// malformed producer from the logs.
func decodeSearch(b []byte) (domain.Search, error) {
	var m message
	if err := json.Unmarshal(b, &m); err != nil {
		return domain.Search{}, fmt.Errorf("%w: %s", domain.ErrConsume, err.Error())
	}
	return domain.Search{
		SearchID: m.SearchID,
		HotelID:  m.HotelID,
		CheckIn:  m.CheckIn,
		CheckOut: m.CheckOut,
		Ages:     m.Ages,
		Count:    m.Count,
	}, nil
}
