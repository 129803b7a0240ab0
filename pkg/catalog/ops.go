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

// Wire names are shared with the host resource. Renaming one is a breaking
// change on both sides.

var (
	CloseTablet     = mutation[None, Ack]("tablet:close")
	GetPlayerData   = query[None, PlayerData]("tablet:getPlayerData")
	GetStats        = query[None, StatsData]("tablet:getStats")
	CheckPermission = query[PermissionRequest, PermissionCheck]("tablet:checkPermission")
	GetConfig       = query[None, TabletConfig]("tablet:getConfig")
)

var (
	ClockIn           = mutation[None, ClockAck]("duty:clockIn")
	ClockOut          = mutation[None, ClockAck]("duty:clockOut")
	GetDutyStatus     = query[None, DutyStatus]("duty:getStatus")
	GetOnDutyOfficers = query[None, []OfficerData]("duty:getOnDutyOfficers")
	ForceDuty         = mutation[ForceDutyRequest, Ack]("duty:force")
)

var (
	GetPositions              = query[None, []PositionData]("positions:getAll")
	UpdatePositionPermissions = mutation[PositionPermissionsRequest, Ack]("positions:updatePermissions")
	UpdatePositionSalary      = mutation[PositionSalaryRequest, Ack]("positions:updateSalary")
	CreatePosition            = mutation[NewPosition, Created]("positions:create")
	DeletePosition            = mutation[PositionRequest, Ack]("positions:delete")
)

var (
	GetEmployees            = query[None, []OfficerData]("employees:getAll")
	GetEmployeeDetails      = query[VisaRequest, OfficerData]("employees:getDetails")
	UpdateEmployeeRank      = mutation[UpdateRankRequest, Ack]("employees:updateRank")
	ToggleRecruiter         = mutation[VisaRequest, RecruiterToggle]("employees:toggleRecruiter")
	DismissEmployee         = mutation[DismissRequest, Ack]("employees:dismiss")
	GetEmployeeClockHistory = query[VisaRequest, []ClockEntry]("employees:getClockHistory")
	AddEmployeeWarning      = mutation[WarningRequest, Ack]("employees:addWarning")
	GetEmployeeWarnings     = query[VisaRequest, []Warning]("employees:getWarnings")
)

var (
	GetOccurrences       = query[None, []OccurrenceData]("occurrences:getAll")
	GetOccurrenceDetails = query[OccurrenceRequest, OccurrenceData]("occurrences:getDetails")
	CreateOccurrence     = mutation[NewOccurrence, Created]("occurrences:create")
	UpdateOccurrence     = mutation[UpdateOccurrenceRequest, Ack]("occurrences:update")
	DeleteOccurrence     = mutation[OccurrenceRequest, Ack]("occurrences:delete")
	AddOccurrenceOfficer = mutation[OccurrenceOfficerRequest, Ack]("occurrences:addOfficer")
	CloseOccurrence      = mutation[CloseOccurrenceRequest, Ack]("occurrences:close")
)

var (
	SearchCitizens    = query[SearchRequest, []CitizenData]("citizens:search")
	GetCitizens       = query[None, []CitizenData]("citizens:getAll")
	GetCitizenDetails = query[VisaRequest, CitizenData]("citizens:getDetails")
	UpdateCitizen     = mutation[UpdateCitizenRequest, Ack]("citizens:update")
	AddCriminalRecord = mutation[AddCriminalRecordRequest, Created]("citizens:addCriminalRecord")
	GetCriminalRecord = query[VisaRequest, []CriminalRecord]("citizens:getCriminalRecord")
	ApplyFine         = mutation[FineRequest, Ack]("citizens:applyFine")
	ApplyJail         = mutation[JailRequest, Ack]("citizens:applyJail")
)

var (
	SearchVehicles        = query[PlateRequest, []VehicleData]("vehicles:search")
	GetVehicles           = query[None, []VehicleData]("vehicles:getAll")
	GetVehicleDetails     = query[PlateRequest, VehicleData]("vehicles:getDetails")
	InspectVehicle        = mutation[PlateNoteRequest, Ack]("vehicles:inspect")
	MarkVehicleIrregular  = mutation[PlateReasonRequest, Ack]("vehicles:markIrregular")
	ClearVehicleIrregular = mutation[PlateRequest, Ack]("vehicles:clearIrregular")
	SeizeVehicle          = mutation[PlateReasonRequest, Ack]("vehicles:seize")
	ReleaseVehicle        = mutation[PlateRequest, Ack]("vehicles:release")
)

var (
	GetRecruitments         = query[None, []RecruitmentData]("recruitment:getAll")
	AddRecruitment          = mutation[AddRecruitmentRequest, Created]("recruitment:add")
	UpdateRecruitmentStatus = mutation[RecruitmentStatusRequest, Ack]("recruitment:updateStatus")
	ApproveRecruitment      = mutation[RecruitmentRequest, Ack]("recruitment:approve")
	RejectRecruitment       = mutation[RejectRecruitmentRequest, Ack]("recruitment:reject")
	DeleteRecruitment       = mutation[RecruitmentRequest, Ack]("recruitment:delete")
)

var (
	GetPenalCode        = query[None, []PenalCodeData]("penalCode:getAll")
	GetPenalCodeArticle = query[ArticleRequest, PenalCodeData]("penalCode:getArticle")
	AddPenalCode        = mutation[NewPenalCode, Created]("penalCode:add")
	UpdatePenalCode     = mutation[UpdatePenalCodeRequest, Ack]("penalCode:update")
	DeletePenalCode     = mutation[PenalCodeRequest, Ack]("penalCode:delete")
)

var (
	GetAlerts    = query[None, AlertData]("alerts:get")
	UpdateAlerts = mutation[AlertsRequest, Ack]("alerts:update")
)

var (
	GetMissions         = query[None, []MissionData]("missions:getAll")
	GetMissionDetails   = query[MissionRequest, MissionData]("missions:getDetails")
	CreateMission       = mutation[NewMission, Created]("missions:create")
	UpdateMissionStatus = mutation[MissionStatusRequest, Ack]("missions:updateStatus")
	AssignMission       = mutation[AssignMissionRequest, Ack]("missions:assign")
	UnassignMission     = mutation[UnassignMissionRequest, Ack]("missions:unassign")
	DeleteMission       = mutation[MissionRequest, Ack]("missions:delete")
)

var (
	BroadcastMessage   = mutation[BroadcastRequest, Ack]("radio:broadcast")
	SendEmergencyAlert = mutation[EmergencyRequest, Ack]("radio:emergency")
	RequestBackup      = mutation[BackupRequest, Ack]("radio:backup")
)

var GetLogs = query[LogsRequest, []LogEntry]("logs:getAll")
