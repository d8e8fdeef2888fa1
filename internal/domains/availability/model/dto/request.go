package dto

import (
	"net/http"
	"salon/shared/constant"
	"strings"
)

// FromRequest reads ?date=YYYY-MM-DD&service_ids=a,b. Repeated service_ids parameters are accepted too.
func (r *SlotsRequest) FromRequest(request *http.Request) {
	query := request.URL.Query()

	r.Date = query.Get(constant.RequestParamDate)
	r.ServiceIDs = SplitIDs(query[constant.RequestParamServiceIDs])
}

// SplitIDs flattens comma separated values and drops blanks.
func SplitIDs(values []string) []string {
	ids := []string{}

	for _, value := range values {
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != constant.Empty {
				ids = append(ids, id)
			}
		}
	}

	return ids
}
