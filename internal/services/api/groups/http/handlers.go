// Package http provides http transport for keyword groups
package http

import (
	stdhttp "net/http"

	"ranksignal/internal/modkit/httpkit"
	"ranksignal/internal/services/api/groups/domain"
	svc "ranksignal/internal/services/api/groups/service"
)

// Register mounts group endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateGroupInput](r, "/create", h.create)
	httpkit.PostJSON[domain.MemberInput](r, "/members/add", h.addMember)
	httpkit.PostJSON[domain.MemberInput](r, "/members/remove", h.removeMember)

	// averaged member position series
	httpkit.PostJSON[domain.PerformanceInput](r, "/performance", h.performance)
	httpkit.PostJSON[domain.AllPerformanceInput](r, "/performance/all", h.allPerformance)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /groups/create Groups groupsCreate
// @Summary Create a keyword group under a domain
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body domain.CreateGroupInput true "Group"
// @Success 200 {object} domain.Group "ok"
// @Router /groups/create [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateGroupInput) (any, error) {
	return h.svc.CreateGroup(r.Context(), in)
}

// swagger:route POST /groups/members/add Groups groupsAddMember
// @Summary Add a keyword to a group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body domain.MemberInput true "Membership"
// @Success 200 {object} nil "ok"
// @Router /groups/members/add [post]
func (h *handlers) addMember(r *stdhttp.Request, in domain.MemberInput) (any, error) {
	return nil, h.svc.AddKeyword(r.Context(), in)
}

// swagger:route POST /groups/members/remove Groups groupsRemoveMember
// @Summary Remove a keyword from a group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body domain.MemberInput true "Membership"
// @Success 200 {object} nil "ok"
// @Router /groups/members/remove [post]
func (h *handlers) removeMember(r *stdhttp.Request, in domain.MemberInput) (any, error) {
	return nil, h.svc.RemoveKeyword(r.Context(), in)
}

// swagger:route POST /groups/performance Groups groupsPerformance
// @Summary Averaged position series for one group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body domain.PerformanceInput true "Query"
// @Success 200 {array} domain.PerformancePoint "ok"
// @Router /groups/performance [post]
func (h *handlers) performance(r *stdhttp.Request, in domain.PerformanceInput) (any, error) {
	return h.svc.Performance(r.Context(), in)
}

// swagger:route POST /groups/performance/all Groups groupsAllPerformance
// @Summary Averaged position series for every group under a domain
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body domain.AllPerformanceInput true "Query"
// @Success 200 {array} domain.GroupSeries "ok"
// @Router /groups/performance/all [post]
func (h *handlers) allPerformance(r *stdhttp.Request, in domain.AllPerformanceInput) (any, error) {
	return h.svc.AllPerformance(r.Context(), in)
}
