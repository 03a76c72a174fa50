package trainapi

// SearchRequest describes a journey search between two stations over an
// outbound/return window. All four fields are required; the time values are
// passed through to the API verbatim.
type SearchRequest struct {
	From         string `json:"from"`
	To           string `json:"to"`
	OutboundTime string `json:"outboundTime"`
	ReturnTime   string `json:"returnTime"`
}

// JourneyResponse is the search result: an ordered list of candidate journeys.
// An empty list is a valid response.
type JourneyResponse struct {
	Journeys []Journey `json:"journeys"`
}

// Journey is one candidate trip between the requested stations.
type Journey struct {
	ID            string `json:"id"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Operator      string `json:"operator"`
}

// BookRequest identifies the trains to book. TrainIDs is an opaque,
// caller-formatted identifier (possibly a delimited list); this layer does not
// parse it, it only embeds it as a single path segment.
type BookRequest struct {
	TrainIDs string `json:"trainIds"`
}

// BookingResponse confirms the outcome of a booking call.
type BookingResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}
