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

package catalog

import "context"

// Client exposes every operation as a typed method over one Caller. It knows
// nothing about cached state: panels mutate through datasync.Run so that
// declared invalidations apply.
type Client struct {
	c Caller
}

func NewClient(c Caller) *Client {
	return &Client{c: c}
}

func (c *Client) CloseTablet(ctx context.Context) (Ack, error) {
	return CloseTablet.Call(ctx, c.c, None{})
}

func (c *Client) GetPlayerData(ctx context.Context) (PlayerData, error) {
	return GetPlayerData.Call(ctx, c.c, None{})
}

func (c *Client) GetStats(ctx context.Context) (StatsData, error) {
	return GetStats.Call(ctx, c.c, None{})
}

func (c *Client) CheckPermission(ctx context.Context, permission string) (PermissionCheck, error) {
	return CheckPermission.Call(ctx, c.c, PermissionRequest{Permission: permission})
}

func (c *Client) GetConfig(ctx context.Context) (TabletConfig, error) {
	return GetConfig.Call(ctx, c.c, None{})
}

func (c *Client) ClockIn(ctx context.Context) (ClockAck, error) {
	return ClockIn.Call(ctx, c.c, None{})
}

func (c *Client) ClockOut(ctx context.Context) (ClockAck, error) {
	return ClockOut.Call(ctx, c.c, None{})
}

func (c *Client) GetDutyStatus(ctx context.Context) (DutyStatus, error) {
	return GetDutyStatus.Call(ctx, c.c, None{})
}

func (c *Client) GetOnDutyOfficers(ctx context.Context) ([]OfficerData, error) {
	return GetOnDutyOfficers.Call(ctx, c.c, None{})
}

func (c *Client) ForceDuty(ctx context.Context, visaID string, status bool) (Ack, error) {
	return ForceDuty.Call(ctx, c.c, ForceDutyRequest{VisaID: visaID, Status: status})
}

func (c *Client) GetPositions(ctx context.Context) ([]PositionData, error) {
	return GetPositions.Call(ctx, c.c, None{})
}

func (c *Client) UpdatePositionPermissions(ctx context.Context, positionID int, permissions []string) (Ack, error) {
	return UpdatePositionPermissions.Call(ctx, c.c, PositionPermissionsRequest{PositionID: positionID, Permissions: permissions})
}

func (c *Client) UpdatePositionSalary(ctx context.Context, positionID, salary int) (Ack, error) {
	return UpdatePositionSalary.Call(ctx, c.c, PositionSalaryRequest{PositionID: positionID, Salary: salary})
}

func (c *Client) CreatePosition(ctx context.Context, p NewPosition) (Created, error) {
	return CreatePosition.Call(ctx, c.c, p)
}

func (c *Client) DeletePosition(ctx context.Context, positionID int) (Ack, error) {
	return DeletePosition.Call(ctx, c.c, PositionRequest{PositionID: positionID})
}

func (c *Client) GetEmployees(ctx context.Context) ([]OfficerData, error) {
	return GetEmployees.Call(ctx, c.c, None{})
}

func (c *Client) GetEmployeeDetails(ctx context.Context, visaID string) (OfficerData, error) {
	return GetEmployeeDetails.Call(ctx, c.c, VisaRequest{VisaID: visaID})
}

func (c *Client) UpdateEmployeeRank(ctx context.Context, visaID string, newRankID int) (Ack, error) {
	return UpdateEmployeeRank.Call(ctx, c.c, UpdateRankRequest{VisaID: visaID, NewRankID: newRankID})
}

func (c *Client) ToggleRecruiter(ctx context.Context, visaID string) (RecruiterToggle, error) {
	return ToggleRecruiter.Call(ctx, c.c, VisaRequest{VisaID: visaID})
}

// DismissEmployee omits reason from the request when it is empty.
func (c *Client) DismissEmployee(ctx context.Context, visaID, reason string) (Ack, error) {
	return DismissEmployee.Call(ctx, c.c, DismissRequest{VisaID: visaID, Reason: reason})
}

func (c *Client) GetEmployeeClockHistory(ctx context.Context, visaID string) ([]ClockEntry, error) {
	return GetEmployeeClockHistory.Call(ctx, c.c, VisaRequest{VisaID: visaID})
}

func (c *Client) AddEmployeeWarning(ctx context.Context, visaID, reason string) (Ack, error) {
	return AddEmployeeWarning.Call(ctx, c.c, WarningRequest{VisaID: visaID, Reason: reason})
}

func (c *Client) GetEmployeeWarnings(ctx context.Context, visaID string) ([]Warning, error) {
	return GetEmployeeWarnings.Call(ctx, c.c, VisaRequest{VisaID: visaID})
}

func (c *Client) GetOccurrences(ctx context.Context) ([]OccurrenceData, error) {
	return GetOccurrences.Call(ctx, c.c, None{})
}

func (c *Client) GetOccurrenceDetails(ctx context.Context, occurrenceID int) (OccurrenceData, error) {
	return GetOccurrenceDetails.Call(ctx, c.c, OccurrenceRequest{OccurrenceID: occurrenceID})
}

func (c *Client) CreateOccurrence(ctx context.Context, o NewOccurrence) (Created, error) {
	return CreateOccurrence.Call(ctx, c.c, o)
}

func (c *Client) UpdateOccurrence(ctx context.Context, occurrenceID int, patch OccurrencePatch) (Ack, error) {
	return UpdateOccurrence.Call(ctx, c.c, UpdateOccurrenceRequest{OccurrenceID: occurrenceID, Data: patch})
}

func (c *Client) DeleteOccurrence(ctx context.Context, occurrenceID int) (Ack, error) {
	return DeleteOccurrence.Call(ctx, c.c, OccurrenceRequest{OccurrenceID: occurrenceID})
}

func (c *Client) AddOccurrenceOfficer(ctx context.Context, occurrenceID int, visaID string) (Ack, error) {
	return AddOccurrenceOfficer.Call(ctx, c.c, OccurrenceOfficerRequest{OccurrenceID: occurrenceID, VisaID: visaID})
}

func (c *Client) CloseOccurrence(ctx context.Context, occurrenceID int, resolution string) (Ack, error) {
	return CloseOccurrence.Call(ctx, c.c, CloseOccurrenceRequest{OccurrenceID: occurrenceID, Resolution: resolution})
}

func (c *Client) SearchCitizens(ctx context.Context, query string) ([]CitizenData, error) {
	return SearchCitizens.Call(ctx, c.c, SearchRequest{Query: query})
}

func (c *Client) GetCitizens(ctx context.Context) ([]CitizenData, error) {
	return GetCitizens.Call(ctx, c.c, None{})
}

func (c *Client) GetCitizenDetails(ctx context.Context, visaID string) (CitizenData, error) {
	return GetCitizenDetails.Call(ctx, c.c, VisaRequest{VisaID: visaID})
}

func (c *Client) UpdateCitizen(ctx context.Context, visaID string, patch CitizenPatch) (Ack, error) {
	return UpdateCitizen.Call(ctx, c.c, UpdateCitizenRequest{VisaID: visaID, Data: patch})
}

func (c *Client) AddCriminalRecord(ctx context.Context, visaID string, record NewCriminalRecord) (Created, error) {
	return AddCriminalRecord.Call(ctx, c.c, AddCriminalRecordRequest{VisaID: visaID, Record: record})
}

func (c *Client) GetCriminalRecord(ctx context.Context, visaID string) ([]CriminalRecord, error) {
	return GetCriminalRecord.Call(ctx, c.c, VisaRequest{VisaID: visaID})
}

func (c *Client) ApplyFine(ctx context.Context, visaID, article string, value int, reason string) (Ack, error) {
	return ApplyFine.Call(ctx, c.c, FineRequest{VisaID: visaID, Article: article, Value: value, Reason: reason})
}

func (c *Client) ApplyJail(ctx context.Context, visaID, article string, minutes int, reason string) (Ack, error) {
	return ApplyJail.Call(ctx, c.c, JailRequest{VisaID: visaID, Article: article, Time: minutes, Reason: reason})
}

func (c *Client) SearchVehicles(ctx context.Context, plate string) ([]VehicleData, error) {
	return SearchVehicles.Call(ctx, c.c, PlateRequest{Plate: plate})
}

func (c *Client) GetVehicles(ctx context.Context) ([]VehicleData, error) {
	return GetVehicles.Call(ctx, c.c, None{})
}

func (c *Client) GetVehicleDetails(ctx context.Context, plate string) (VehicleData, error) {
	return GetVehicleDetails.Call(ctx, c.c, PlateRequest{Plate: plate})
}

func (c *Client) InspectVehicle(ctx context.Context, plate, notes string) (Ack, error) {
	return InspectVehicle.Call(ctx, c.c, PlateNoteRequest{Plate: plate, Notes: notes})
}

func (c *Client) MarkVehicleIrregular(ctx context.Context, plate, reason string) (Ack, error) {
	return MarkVehicleIrregular.Call(ctx, c.c, PlateReasonRequest{Plate: plate, Reason: reason})
}

func (c *Client) ClearVehicleIrregular(ctx context.Context, plate string) (Ack, error) {
	return ClearVehicleIrregular.Call(ctx, c.c, PlateRequest{Plate: plate})
}

func (c *Client) SeizeVehicle(ctx context.Context, plate, reason string) (Ack, error) {
	return SeizeVehicle.Call(ctx, c.c, PlateReasonRequest{Plate: plate, Reason: reason})
}

func (c *Client) ReleaseVehicle(ctx context.Context, plate string) (Ack, error) {
	return ReleaseVehicle.Call(ctx, c.c, PlateRequest{Plate: plate})
}

func (c *Client) GetRecruitments(ctx context.Context) ([]RecruitmentData, error) {
	return GetRecruitments.Call(ctx, c.c, None{})
}

func (c *Client) AddRecruitment(ctx context.Context, visaID, name, notes string) (Created, error) {
	return AddRecruitment.Call(ctx, c.c, AddRecruitmentRequest{VisaID: visaID, Name: name, Notes: notes})
}

// UpdateRecruitmentStatus sends grade only when it is non-nil.
func (c *Client) UpdateRecruitmentStatus(ctx context.Context, recruitmentID int, status string, grade *int) (Ack, error) {
	return UpdateRecruitmentStatus.Call(ctx, c.c, RecruitmentStatusRequest{RecruitmentID: recruitmentID, Status: status, Grade: grade})
}

func (c *Client) ApproveRecruitment(ctx context.Context, recruitmentID int) (Ack, error) {
	return ApproveRecruitment.Call(ctx, c.c, RecruitmentRequest{RecruitmentID: recruitmentID})
}

func (c *Client) RejectRecruitment(ctx context.Context, recruitmentID int, reason string) (Ack, error) {
	return RejectRecruitment.Call(ctx, c.c, RejectRecruitmentRequest{RecruitmentID: recruitmentID, Reason: reason})
}

func (c *Client) DeleteRecruitment(ctx context.Context, recruitmentID int) (Ack, error) {
	return DeleteRecruitment.Call(ctx, c.c, RecruitmentRequest{RecruitmentID: recruitmentID})
}

func (c *Client) GetPenalCode(ctx context.Context) ([]PenalCodeData, error) {
	return GetPenalCode.Call(ctx, c.c, None{})
}

func (c *Client) GetPenalCodeArticle(ctx context.Context, article string) (PenalCodeData, error) {
	return GetPenalCodeArticle.Call(ctx, c.c, ArticleRequest{Article: article})
}

func (c *Client) AddPenalCode(ctx context.Context, code NewPenalCode) (Created, error) {
	return AddPenalCode.Call(ctx, c.c, code)
}

func (c *Client) UpdatePenalCode(ctx context.Context, codeID int, patch PenalCodePatch) (Ack, error) {
	return UpdatePenalCode.Call(ctx, c.c, UpdatePenalCodeRequest{CodeID: codeID, Data: patch})
}

func (c *Client) DeletePenalCode(ctx context.Context, codeID int) (Ack, error) {
	return DeletePenalCode.Call(ctx, c.c, PenalCodeRequest{CodeID: codeID})
}

func (c *Client) GetAlerts(ctx context.Context) (AlertData, error) {
	return GetAlerts.Call(ctx, c.c, None{})
}

func (c *Client) UpdateAlerts(ctx context.Context, content string) (Ack, error) {
	return UpdateAlerts.Call(ctx, c.c, AlertsRequest{Content: content})
}

func (c *Client) GetMissions(ctx context.Context) ([]MissionData, error) {
	return GetMissions.Call(ctx, c.c, None{})
}

func (c *Client) GetMissionDetails(ctx context.Context, missionID int) (MissionData, error) {
	return GetMissionDetails.Call(ctx, c.c, MissionRequest{MissionID: missionID})
}

func (c *Client) CreateMission(ctx context.Context, m NewMission) (Created, error) {
	return CreateMission.Call(ctx, c.c, m)
}

func (c *Client) UpdateMissionStatus(ctx context.Context, missionID int, status MissionStatus) (Ack, error) {
	return UpdateMissionStatus.Call(ctx, c.c, MissionStatusRequest{MissionID: missionID, Status: status})
}

func (c *Client) AssignMission(ctx context.Context, missionID int, visaIDs []string) (Ack, error) {
	return AssignMission.Call(ctx, c.c, AssignMissionRequest{MissionID: missionID, VisaIDs: visaIDs})
}

func (c *Client) UnassignMission(ctx context.Context, missionID int, visaID string) (Ack, error) {
	return UnassignMission.Call(ctx, c.c, UnassignMissionRequest{MissionID: missionID, VisaID: visaID})
}

func (c *Client) DeleteMission(ctx context.Context, missionID int) (Ack, error) {
	return DeleteMission.Call(ctx, c.c, MissionRequest{MissionID: missionID})
}

func (c *Client) BroadcastMessage(ctx context.Context, message string) (Ack, error) {
	return BroadcastMessage.Call(ctx, c.c, BroadcastRequest{Message: message})
}

func (c *Client) SendEmergencyAlert(ctx context.Context, kind, location, details string) (Ack, error) {
	return SendEmergencyAlert.Call(ctx, c.c, EmergencyRequest{Type: kind, Location: location, Details: details})
}

func (c *Client) RequestBackup(ctx context.Context, location string, priority Priority) (Ack, error) {
	return RequestBackup.Call(ctx, c.c, BackupRequest{Location: location, Priority: priority})
}

// GetLogs sends no filter when filter is nil.
func (c *Client) GetLogs(ctx context.Context, filter *LogFilter) ([]LogEntry, error) {
	return GetLogs.Call(ctx, c.c, LogsRequest{Filter: filter})
}
