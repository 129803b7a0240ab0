// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied. See the License for the
// specific language governing permissions and limitations
// under the License.

package datasync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/police-tablet/nui-bridge/pkg/catalog"
	"github.com/police-tablet/nui-bridge/pkg/core"
)

// Store binds catalog queries to cache keys and catalog mutations to their
// declared invalidations. Every mutation must go through Run (or the typed
// methods built on it); calling a catalog operation directly on the caller
// skips invalidation.
type Store struct {
	cache  *Cache
	caller catalog.Caller
}

// NewStore defines every key on cache. Keys absent from policies use the
// defaults.
func NewStore(cache *Cache, caller catalog.Caller, policies map[Key]Policy) *Store {
	s := &Store{cache: cache, caller: caller}

	p := DefaultPolicies()
	for k, v := range policies {
		p[k] = v
	}

	bind(s, KeyPlayerData, catalog.GetPlayerData, p[KeyPlayerData])
	bind(s, KeyStats, catalog.GetStats, p[KeyStats])
	bind(s, KeyDutyStatus, catalog.GetDutyStatus, p[KeyDutyStatus])
	bind(s, KeyOnDutyOfficers, catalog.GetOnDutyOfficers, p[KeyOnDutyOfficers])
	bind(s, KeyPositions, catalog.GetPositions, p[KeyPositions])
	bind(s, KeyEmployees, catalog.GetEmployees, p[KeyEmployees])
	bind(s, KeyOccurrences, catalog.GetOccurrences, p[KeyOccurrences])
	bind(s, KeyCitizens, catalog.GetCitizens, p[KeyCitizens])
	bind(s, KeyVehicles, catalog.GetVehicles, p[KeyVehicles])
	bind(s, KeyRecruitment, catalog.GetRecruitments, p[KeyRecruitment])
	bind(s, KeyPenalCode, catalog.GetPenalCode, p[KeyPenalCode])
	bind(s, KeyAlerts, catalog.GetAlerts, p[KeyAlerts])
	bind(s, KeyMissions, catalog.GetMissions, p[KeyMissions])
	return s
}

func bind[Resp any](s *Store, key Key, op catalog.Operation[catalog.None, Resp], p Policy) {
	Define(s.cache, key, func(ctx context.Context) (Resp, error) {
		return op.Call(ctx, s.caller, catalog.None{})
	}, p)
}

func (s *Store) Cache() *Cache { return s.cache }

// Run invokes op and applies its declared invalidations on success. It is the
// mutation path for operations without a typed Store method.
func Run[Req, Resp any](ctx context.Context, s *Store, op catalog.Operation[Req, Resp], req Req) (Resp, error) {
	return Mutate(ctx, s.cache, op.Name(), func(ctx context.Context) (Resp, error) {
		return op.Call(ctx, s.caller, req)
	})
}

// CallRaw invokes an operation named at runtime with an untyped payload.
// Unknown names are rejected before anything is sent.
func (s *Store) CallRaw(ctx context.Context, name string, payload json.RawMessage) (json.RawMessage, error) {
	desc, ok := catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownOperation, name)
	}
	call := func(ctx context.Context) (json.RawMessage, error) {
		return s.caller.Call(ctx, string(desc.Name), payload)
	}
	if !desc.Mutating {
		return call(ctx)
	}
	return Mutate(ctx, s.cache, desc.Name, call)
}

func (s *Store) PlayerData(ctx context.Context) (catalog.PlayerData, error) {
	return Read[catalog.PlayerData](ctx, s.cache, KeyPlayerData)
}

func (s *Store) Stats(ctx context.Context) (catalog.StatsData, error) {
	return Read[catalog.StatsData](ctx, s.cache, KeyStats)
}

func (s *Store) DutyStatus(ctx context.Context) (catalog.DutyStatus, error) {
	return Read[catalog.DutyStatus](ctx, s.cache, KeyDutyStatus)
}

func (s *Store) OnDutyOfficers(ctx context.Context) ([]catalog.OfficerData, error) {
	return Read[[]catalog.OfficerData](ctx, s.cache, KeyOnDutyOfficers)
}

func (s *Store) Positions(ctx context.Context) ([]catalog.PositionData, error) {
	return Read[[]catalog.PositionData](ctx, s.cache, KeyPositions)
}

func (s *Store) Employees(ctx context.Context) ([]catalog.OfficerData, error) {
	return Read[[]catalog.OfficerData](ctx, s.cache, KeyEmployees)
}

func (s *Store) Occurrences(ctx context.Context) ([]catalog.OccurrenceData, error) {
	return Read[[]catalog.OccurrenceData](ctx, s.cache, KeyOccurrences)
}

func (s *Store) Citizens(ctx context.Context) ([]catalog.CitizenData, error) {
	return Read[[]catalog.CitizenData](ctx, s.cache, KeyCitizens)
}

func (s *Store) Vehicles(ctx context.Context) ([]catalog.VehicleData, error) {
	return Read[[]catalog.VehicleData](ctx, s.cache, KeyVehicles)
}

func (s *Store) Recruitment(ctx context.Context) ([]catalog.RecruitmentData, error) {
	return Read[[]catalog.RecruitmentData](ctx, s.cache, KeyRecruitment)
}

func (s *Store) PenalCode(ctx context.Context) ([]catalog.PenalCodeData, error) {
	return Read[[]catalog.PenalCodeData](ctx, s.cache, KeyPenalCode)
}

func (s *Store) Alerts(ctx context.Context) (catalog.AlertData, error) {
	return Read[catalog.AlertData](ctx, s.cache, KeyAlerts)
}

func (s *Store) Missions(ctx context.Context) ([]catalog.MissionData, error) {
	return Read[[]catalog.MissionData](ctx, s.cache, KeyMissions)
}

func (s *Store) ClockIn(ctx context.Context) (catalog.ClockAck, error) {
	return Run(ctx, s, catalog.ClockIn, catalog.None{})
}

func (s *Store) ClockOut(ctx context.Context) (catalog.ClockAck, error) {
	return Run(ctx, s, catalog.ClockOut, catalog.None{})
}

func (s *Store) UpdateEmployeeRank(ctx context.Context, visaID string, newRankID int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.UpdateEmployeeRank, catalog.UpdateRankRequest{VisaID: visaID, NewRankID: newRankID})
}

func (s *Store) ToggleRecruiter(ctx context.Context, visaID string) (catalog.RecruiterToggle, error) {
	return Run(ctx, s, catalog.ToggleRecruiter, catalog.VisaRequest{VisaID: visaID})
}

func (s *Store) DismissEmployee(ctx context.Context, visaID, reason string) (catalog.Ack, error) {
	return Run(ctx, s, catalog.DismissEmployee, catalog.DismissRequest{VisaID: visaID, Reason: reason})
}

func (s *Store) CreateOccurrence(ctx context.Context, o catalog.NewOccurrence) (catalog.Created, error) {
	return Run(ctx, s, catalog.CreateOccurrence, o)
}

func (s *Store) UpdateOccurrence(ctx context.Context, occurrenceID int, patch catalog.OccurrencePatch) (catalog.Ack, error) {
	return Run(ctx, s, catalog.UpdateOccurrence, catalog.UpdateOccurrenceRequest{OccurrenceID: occurrenceID, Data: patch})
}

func (s *Store) DeleteOccurrence(ctx context.Context, occurrenceID int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.DeleteOccurrence, catalog.OccurrenceRequest{OccurrenceID: occurrenceID})
}

func (s *Store) UpdatePositionPermissions(ctx context.Context, positionID int, permissions []string) (catalog.Ack, error) {
	return Run(ctx, s, catalog.UpdatePositionPermissions, catalog.PositionPermissionsRequest{PositionID: positionID, Permissions: permissions})
}

func (s *Store) AddRecruitment(ctx context.Context, visaID, name, notes string) (catalog.Created, error) {
	return Run(ctx, s, catalog.AddRecruitment, catalog.AddRecruitmentRequest{VisaID: visaID, Name: name, Notes: notes})
}

func (s *Store) UpdateRecruitmentStatus(ctx context.Context, recruitmentID int, status string, grade *int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.UpdateRecruitmentStatus, catalog.RecruitmentStatusRequest{RecruitmentID: recruitmentID, Status: status, Grade: grade})
}

func (s *Store) DeleteRecruitment(ctx context.Context, recruitmentID int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.DeleteRecruitment, catalog.RecruitmentRequest{RecruitmentID: recruitmentID})
}

func (s *Store) AddPenalCode(ctx context.Context, code catalog.NewPenalCode) (catalog.Created, error) {
	return Run(ctx, s, catalog.AddPenalCode, code)
}

func (s *Store) UpdatePenalCode(ctx context.Context, codeID int, patch catalog.PenalCodePatch) (catalog.Ack, error) {
	return Run(ctx, s, catalog.UpdatePenalCode, catalog.UpdatePenalCodeRequest{CodeID: codeID, Data: patch})
}

func (s *Store) DeletePenalCode(ctx context.Context, codeID int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.DeletePenalCode, catalog.PenalCodeRequest{CodeID: codeID})
}

func (s *Store) UpdateAlerts(ctx context.Context, content string) (catalog.Ack, error) {
	return Run(ctx, s, catalog.UpdateAlerts, catalog.AlertsRequest{Content: content})
}

func (s *Store) ForceDuty(ctx context.Context, visaID string, onDuty bool) (catalog.Ack, error) {
	return Run(ctx, s, catalog.ForceDuty, catalog.ForceDutyRequest{VisaID: visaID, Status: onDuty})
}

func (s *Store) UpdatePositionSalary(ctx context.Context, positionID, salary int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.UpdatePositionSalary, catalog.PositionSalaryRequest{PositionID: positionID, Salary: salary})
}

func (s *Store) CreatePosition(ctx context.Context, p catalog.NewPosition) (catalog.Created, error) {
	return Run(ctx, s, catalog.CreatePosition, p)
}

func (s *Store) DeletePosition(ctx context.Context, positionID int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.DeletePosition, catalog.PositionRequest{PositionID: positionID})
}

func (s *Store) AddOccurrenceOfficer(ctx context.Context, occurrenceID int, visaID string) (catalog.Ack, error) {
	return Run(ctx, s, catalog.AddOccurrenceOfficer, catalog.OccurrenceOfficerRequest{OccurrenceID: occurrenceID, VisaID: visaID})
}

func (s *Store) CloseOccurrence(ctx context.Context, occurrenceID int, resolution string) (catalog.Ack, error) {
	return Run(ctx, s, catalog.CloseOccurrence, catalog.CloseOccurrenceRequest{OccurrenceID: occurrenceID, Resolution: resolution})
}

func (s *Store) ApproveRecruitment(ctx context.Context, recruitmentID int) (catalog.Ack, error) {
	return Run(ctx, s, catalog.ApproveRecruitment, catalog.RecruitmentRequest{RecruitmentID: recruitmentID})
}

func (s *Store) RejectRecruitment(ctx context.Context, recruitmentID int, reason string) (catalog.Ack, error) {
	return Run(ctx, s, catalog.RejectRecruitment, catalog.RejectRecruitmentRequest{RecruitmentID: recruitmentID, Reason: reason})
}
