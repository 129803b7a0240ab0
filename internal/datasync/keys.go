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
	"time"

	"github.com/police-tablet/nui-bridge/pkg/catalog"
)

// Key names one unit of host state held by the cache.
type Key string

const (
	KeyPlayerData     Key = "playerData"
	KeyStats          Key = "stats"
	KeyDutyStatus     Key = "dutyStatus"
	KeyOnDutyOfficers Key = "onDutyOfficers"
	KeyPositions      Key = "positions"
	KeyEmployees      Key = "employees"
	KeyOccurrences    Key = "occurrences"
	KeyCitizens       Key = "citizens"
	KeyVehicles       Key = "vehicles"
	KeyRecruitment    Key = "recruitment"
	KeyPenalCode      Key = "penalCode"
	KeyAlerts         Key = "alerts"
	KeyMissions       Key = "missions"
)

// Keys lists every cache key in a stable order.
func Keys() []Key {
	return []Key{
		KeyPlayerData, KeyStats, KeyDutyStatus, KeyOnDutyOfficers, KeyPositions,
		KeyEmployees, KeyOccurrences, KeyCitizens, KeyVehicles, KeyRecruitment,
		KeyPenalCode, KeyAlerts, KeyMissions,
	}
}

// DefaultPolicies are the per-key budgets the panel ships with.
func DefaultPolicies() map[Key]Policy {
	return map[Key]Policy{
		KeyPlayerData:     {StaleTime: 5 * time.Minute},
		KeyStats:          {RefetchInterval: 30 * time.Second},
		KeyOnDutyOfficers: {RefetchInterval: 10 * time.Second},
	}
}

// Invalidations declares which keys each mutating operation makes stale on
// success. Mutations missing here invalidate nothing.
var Invalidations = map[catalog.OpName][]Key{
	catalog.ClockIn.Name():   {KeyDutyStatus, KeyOnDutyOfficers, KeyStats},
	catalog.ClockOut.Name():  {KeyDutyStatus, KeyOnDutyOfficers, KeyStats},
	catalog.ForceDuty.Name(): {KeyDutyStatus, KeyOnDutyOfficers, KeyStats},

	catalog.UpdateEmployeeRank.Name(): {KeyEmployees, KeyPositions},
	catalog.ToggleRecruiter.Name():    {KeyEmployees},
	catalog.DismissEmployee.Name():    {KeyEmployees, KeyPositions, KeyStats},

	catalog.CreateOccurrence.Name():     {KeyOccurrences, KeyStats},
	catalog.DeleteOccurrence.Name():     {KeyOccurrences, KeyStats},
	catalog.CloseOccurrence.Name():      {KeyOccurrences, KeyStats},
	catalog.UpdateOccurrence.Name():     {KeyOccurrences},
	catalog.AddOccurrenceOfficer.Name(): {KeyOccurrences},

	catalog.UpdatePositionPermissions.Name(): {KeyPositions},
	catalog.UpdatePositionSalary.Name():      {KeyPositions},
	catalog.CreatePosition.Name():            {KeyPositions},
	catalog.DeletePosition.Name():            {KeyPositions},

	catalog.AddRecruitment.Name():          {KeyRecruitment},
	catalog.UpdateRecruitmentStatus.Name(): {KeyRecruitment},
	catalog.RejectRecruitment.Name():       {KeyRecruitment},
	catalog.DeleteRecruitment.Name():       {KeyRecruitment},
	catalog.ApproveRecruitment.Name():      {KeyRecruitment, KeyEmployees, KeyPositions, KeyStats},

	catalog.AddPenalCode.Name():    {KeyPenalCode},
	catalog.UpdatePenalCode.Name(): {KeyPenalCode},
	catalog.DeletePenalCode.Name(): {KeyPenalCode},

	catalog.UpdateAlerts.Name(): {KeyAlerts},

	catalog.UpdateCitizen.Name():     {KeyCitizens},
	catalog.AddCriminalRecord.Name(): {KeyCitizens},
	catalog.ApplyFine.Name():         {KeyCitizens},
	catalog.ApplyJail.Name():         {KeyCitizens},

	catalog.InspectVehicle.Name():        {KeyVehicles},
	catalog.MarkVehicleIrregular.Name():  {KeyVehicles},
	catalog.ClearVehicleIrregular.Name(): {KeyVehicles},
	catalog.SeizeVehicle.Name():          {KeyVehicles},
	catalog.ReleaseVehicle.Name():        {KeyVehicles},

	catalog.CreateMission.Name():       {KeyMissions},
	catalog.UpdateMissionStatus.Name(): {KeyMissions},
	catalog.AssignMission.Name():       {KeyMissions},
	catalog.UnassignMission.Name():     {KeyMissions},
	catalog.DeleteMission.Name():       {KeyMissions},
}

// Mutate runs call and, only if it succeeds, invalidates every key op
// declares. A failed call leaves the cache untouched and returns its error.
func Mutate[Resp any](ctx context.Context, c *Cache, op catalog.OpName, call func(ctx context.Context) (Resp, error)) (Resp, error) {
	resp, err := call(ctx)
	if err != nil {
		return resp, err
	}
	c.Invalidate(Invalidations[op]...)
	return resp, nil
}
