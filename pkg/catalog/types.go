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

import "encoding/json"

// None is the request of operations that take no arguments. It is sent as {}.
type None struct{}

type PlayerData struct {
	ID          int      `json:"id"`
	VisaID      string   `json:"visaId"`
	Name        string   `json:"name"`
	Rank        string   `json:"rank"`
	RankID      int      `json:"rankId"`
	RankColor   string   `json:"rankColor"`
	IsOnDuty    bool     `json:"isOnDuty"`
	Permissions []string `json:"permissions"`
	Phone       string   `json:"phone"`
}

type ClockType string

const (
	ClockTypeIn  ClockType = "in"
	ClockTypeOut ClockType = "out"
)

type ClockEntry struct {
	Type ClockType `json:"type"`
	Date string    `json:"date"`
}

type OfficerData struct {
	ID               int          `json:"id"`
	VisaID           string       `json:"visaId"`
	Name             string       `json:"name"`
	Rank             string       `json:"rank"`
	RankID           int          `json:"rankId"`
	RankColor        string       `json:"rankColor"`
	LastClockIn      string       `json:"lastClockIn"`
	IsOnDuty         bool         `json:"isOnDuty"`
	BulletinsCreated int          `json:"bulletinsCreated"`
	IsRecruiter      bool         `json:"isRecruiter"`
	ClockHistory     []ClockEntry `json:"clockHistory"`
}

type PositionData struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Salary       string   `json:"salary"`
	OfficerCount int      `json:"officerCount"`
	Color        string   `json:"color"`
	Permissions  []string `json:"permissions"`
}

// NewPosition is a position as created by the panel; the host assigns the id
// and officer count.
type NewPosition struct {
	Name        string   `json:"name"`
	Salary      string   `json:"salary"`
	Color       string   `json:"color"`
	Permissions []string `json:"permissions"`
}

type OccurrenceData struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	Requester        string `json:"requester"`
	OpenedBy         string `json:"openedBy"`
	OpenedAt         string `json:"openedAt"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status,omitempty"`
	InvolvedOfficers []int  `json:"involvedOfficers,omitempty"`
}

type NewOccurrence struct {
	Title            string `json:"title"`
	Date             string `json:"date"`
	Requester        string `json:"requester"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status,omitempty"`
	InvolvedOfficers []int  `json:"involvedOfficers,omitempty"`
}

// OccurrencePatch carries only the fields being changed.
type OccurrencePatch struct {
	Title            *string `json:"title,omitempty"`
	Date             *string `json:"date,omitempty"`
	Requester        *string `json:"requester,omitempty"`
	Description      *string `json:"description,omitempty"`
	Status           *string `json:"status,omitempty"`
	InvolvedOfficers []int   `json:"involvedOfficers,omitempty"`
}

type CriminalRecord struct {
	ID       int    `json:"id"`
	Article  string `json:"article"`
	Date     string `json:"date"`
	Officer  string `json:"officer"`
	Fine     int    `json:"fine"`
	JailTime int    `json:"jailTime"`
}

type NewCriminalRecord struct {
	Article  string `json:"article"`
	Date     string `json:"date"`
	Officer  string `json:"officer"`
	Fine     int    `json:"fine"`
	JailTime int    `json:"jailTime"`
}

type CitizenData struct {
	ID             int              `json:"id"`
	VisaID         string           `json:"visaId"`
	Name           string           `json:"name"`
	Phone          string           `json:"phone"`
	Registration   string           `json:"registration"`
	Address        string           `json:"address,omitempty"`
	CriminalRecord []CriminalRecord `json:"criminal_record,omitempty"`
}

type CitizenPatch struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Registration *string `json:"registration,omitempty"`
	Address      *string `json:"address,omitempty"`
}

type VehicleData struct {
	ID              int    `json:"id"`
	Plate           string `json:"plate"`
	Model           string `json:"model"`
	Owner           string `json:"owner"`
	OwnerVisaID     string `json:"ownerVisaId"`
	Garage          string `json:"garage"`
	Status          string `json:"status"`
	Irregular       bool   `json:"irregular"`
	IrregularReason string `json:"irregularReason,omitempty"`
}

type RecruitmentData struct {
	ID        int    `json:"id"`
	VisaID    string `json:"visaId"`
	Name      string `json:"name"`
	Grade     int    `json:"grade"`
	Status    string `json:"status"`
	UpdatedBy string `json:"updatedBy"`
	UpdatedAt string `json:"updatedAt"`
	Notes     string `json:"notes,omitempty"`
}

type PenalCodeData struct {
	ID          int    `json:"id"`
	Article     string `json:"article"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Penalty     string `json:"penalty"`
	Fine        int    `json:"fine"`
	JailTime    int    `json:"jailTime"`
	Category    string `json:"category"`
}

type NewPenalCode struct {
	Article     string `json:"article"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Penalty     string `json:"penalty"`
	Fine        int    `json:"fine"`
	JailTime    int    `json:"jailTime"`
	Category    string `json:"category"`
}

type PenalCodePatch struct {
	Article     *string `json:"article,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Penalty     *string `json:"penalty,omitempty"`
	Fine        *int    `json:"fine,omitempty"`
	JailTime    *int    `json:"jailTime,omitempty"`
	Category    *string `json:"category,omitempty"`
}

type AlertData struct {
	Content    string `json:"content"`
	LastUpdate string `json:"lastUpdate"`
	UpdatedBy  string `json:"updatedBy"`
}

type StatsData struct {
	Bulletins          int `json:"bulletins"`
	Officers           int `json:"officers"`
	OnDuty             int `json:"onDuty"`
	ActiveRecruitments int `json:"activeRecruitments"`
	PendingOccurrences int `json:"pendingOccurrences"`
}

type MissionStatus string

const (
	MissionPending    MissionStatus = "pending"
	MissionInProgress MissionStatus = "in_progress"
	MissionCompleted  MissionStatus = "completed"
	MissionCancelled  MissionStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type MissionData struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      MissionStatus `json:"status"`
	AssignedTo  []int         `json:"assignedTo"`
	CreatedBy   int           `json:"createdBy"`
	CreatedAt   string        `json:"createdAt"`
	CompletedAt string        `json:"completedAt,omitempty"`
	Priority    Priority      `json:"priority"`
}

type NewMission struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      MissionStatus `json:"status"`
	AssignedTo  []int         `json:"assignedTo"`
	CompletedAt string        `json:"completedAt,omitempty"`
	Priority    Priority      `json:"priority"`
}

type DutyStatus struct {
	IsOnDuty    bool   `json:"isOnDuty"`
	ClockInTime string `json:"clockInTime,omitempty"`
	TotalTime   string `json:"totalTime,omitempty"`
}

type Warning struct {
	ID       int    `json:"id"`
	Reason   string `json:"reason"`
	Date     string `json:"date"`
	IssuedBy string `json:"issuedBy"`
}

type LogFilter struct {
	Action    string `json:"action,omitempty"`
	VisaID    string `json:"visaId,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

type LogEntry struct {
	ID      int    `json:"id"`
	Action  string `json:"action"`
	VisaID  string `json:"visaId"`
	Details string `json:"details"`
	Date    string `json:"date"`
}

// TabletConfig is the resource configuration exposed by the host.
type TabletConfig map[string]json.RawMessage

// Replies.

type Ack struct {
	Success bool `json:"success"`
}

type ClockAck struct {
	Success bool   `json:"success"`
	Time    string `json:"time"`
}

type Created struct {
	Success bool `json:"success"`
	ID      int  `json:"id"`
}

type RecruiterToggle struct {
	Success     bool `json:"success"`
	IsRecruiter bool `json:"isRecruiter"`
}

type PermissionCheck struct {
	HasPermission bool `json:"hasPermission"`
}

// Requests.

type PermissionRequest struct {
	Permission string `json:"permission"`
}

type VisaRequest struct {
	VisaID string `json:"visaId"`
}

type ForceDutyRequest struct {
	VisaID string `json:"visaId"`
	Status bool   `json:"status"`
}

type PositionPermissionsRequest struct {
	PositionID  int      `json:"positionId"`
	Permissions []string `json:"permissions"`
}

type PositionSalaryRequest struct {
	PositionID int `json:"positionId"`
	Salary     int `json:"salary"`
}

type PositionRequest struct {
	PositionID int `json:"positionId"`
}

type UpdateRankRequest struct {
	VisaID    string `json:"visaId"`
	NewRankID int    `json:"newRankId"`
}

type DismissRequest struct {
	VisaID string `json:"visaId"`
	Reason string `json:"reason,omitempty"`
}

type WarningRequest struct {
	VisaID string `json:"visaId"`
	Reason string `json:"reason"`
}

type OccurrenceRequest struct {
	OccurrenceID int `json:"occurrenceId"`
}

type UpdateOccurrenceRequest struct {
	OccurrenceID int             `json:"occurrenceId"`
	Data         OccurrencePatch `json:"data"`
}

type OccurrenceOfficerRequest struct {
	OccurrenceID int    `json:"occurrenceId"`
	VisaID       string `json:"visaId"`
}

type CloseOccurrenceRequest struct {
	OccurrenceID int    `json:"occurrenceId"`
	Resolution   string `json:"resolution"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type UpdateCitizenRequest struct {
	VisaID string       `json:"visaId"`
	Data   CitizenPatch `json:"data"`
}

type AddCriminalRecordRequest struct {
	VisaID string            `json:"visaId"`
	Record NewCriminalRecord `json:"record"`
}

type FineRequest struct {
	VisaID  string `json:"visaId"`
	Article string `json:"article"`
	Value   int    `json:"value"`
	Reason  string `json:"reason"`
}

type JailRequest struct {
	VisaID  string `json:"visaId"`
	Article string `json:"article"`
	Time    int    `json:"time"`
	Reason  string `json:"reason"`
}

type PlateRequest struct {
	Plate string `json:"plate"`
}

type PlateNoteRequest struct {
	Plate string `json:"plate"`
	Notes string `json:"notes"`
}

type PlateReasonRequest struct {
	Plate  string `json:"plate"`
	Reason string `json:"reason"`
}

type AddRecruitmentRequest struct {
	VisaID string `json:"visaId"`
	Name   string `json:"name"`
	Notes  string `json:"notes,omitempty"`
}

type RecruitmentStatusRequest struct {
	RecruitmentID int    `json:"recruitmentId"`
	Status        string `json:"status"`
	Grade         *int   `json:"grade,omitempty"`
}

type RecruitmentRequest struct {
	RecruitmentID int `json:"recruitmentId"`
}

type RejectRecruitmentRequest struct {
	RecruitmentID int    `json:"recruitmentId"`
	Reason        string `json:"reason,omitempty"`
}

type ArticleRequest struct {
	Article string `json:"article"`
}

type UpdatePenalCodeRequest struct {
	CodeID int            `json:"codeId"`
	Data   PenalCodePatch `json:"data"`
}

type PenalCodeRequest struct {
	CodeID int `json:"codeId"`
}

type AlertsRequest struct {
	Content string `json:"content"`
}

type MissionRequest struct {
	MissionID int `json:"missionId"`
}

type MissionStatusRequest struct {
	MissionID int           `json:"missionId"`
	Status    MissionStatus `json:"status"`
}

type AssignMissionRequest struct {
	MissionID int      `json:"missionId"`
	VisaIDs   []string `json:"visaIds"`
}

type UnassignMissionRequest struct {
	MissionID int    `json:"missionId"`
	VisaID    string `json:"visaId"`
}

type BroadcastRequest struct {
	Message string `json:"message"`
}

type EmergencyRequest struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Details  string `json:"details"`
}

type BackupRequest struct {
	Location string   `json:"location"`
	Priority Priority `json:"priority"`
}

type LogsRequest struct {
	Filter *LogFilter `json:"filter,omitempty"`
}
