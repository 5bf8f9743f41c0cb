package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LIT Scheduler API",
        "description": "Shift proposal and swap workflow service",
        "version": "0.1.0"
    },
    "basePath": "/api/scheduler",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Shifts", "description": "Official shift management"},
        {"name": "Assignments", "description": "Employee schedule and conflict checks"},
        {"name": "Proposals", "description": "Shift proposal workflow"},
        {"name": "Swaps", "description": "Shift swap workflow"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/shifts": {
            "get": {
                "tags": ["Shifts"],
                "summary": "List shifts",
                "parameters": [
                    {"name": "title", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Shifts"],
                "summary": "Create shift",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateShiftRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/shifts/{id}": {
            "get": {
                "tags": ["Shifts"],
                "summary": "Get shift",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Shifts"],
                "summary": "Update shift",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateShiftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Shifts"],
                "summary": "Delete shift",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/assignments": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Assign employee to shift",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignShiftRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule conflict"},
                    "422": {"description": "Already assigned"}
                }
            }
        },
        "/assignments/{id}": {
            "delete": {
                "tags": ["Assignments"],
                "summary": "Remove assignment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/assignments/employee/{employeeId}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List an employee's assignments",
                "parameters": [
                    {"name": "employeeId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/employee/{employeeId}/conflicts": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Check schedule conflicts in a window",
                "parameters": [
                    {"name": "employeeId", "in": "path", "required": true, "type": "string"},
                    {"name": "start", "in": "query", "required": true, "type": "string", "format": "date-time"},
                    {"name": "end", "in": "query", "required": true, "type": "string", "format": "date-time"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/shift/{shiftId}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List everyone assigned to a shift",
                "parameters": [
                    {"name": "shiftId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/proposals": {
            "get": {
                "tags": ["Proposals"],
                "summary": "List every shift proposal",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Proposals"],
                "summary": "Submit a shift proposal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateShiftProposalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/proposals/mine": {
            "get": {
                "tags": ["Proposals"],
                "summary": "List the caller's shift proposals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/proposals/export": {
            "get": {
                "tags": ["Proposals"],
                "summary": "Export proposals as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/proposals/{id}": {
            "get": {
                "tags": ["Proposals"],
                "summary": "Get a shift proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Proposals"],
                "summary": "Edit a pending shift proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateShiftProposalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Proposal no longer editable"}
                }
            }
        },
        "/proposals/{id}/cancel": {
            "post": {
                "tags": ["Proposals"],
                "summary": "Withdraw a pending shift proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Proposal already decided"}
                }
            }
        },
        "/proposals/{id}/accept": {
            "post": {
                "tags": ["Proposals"],
                "summary": "Accept a shift proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Schedule conflict"},
                    "422": {"description": "Proposal already decided"}
                }
            }
        },
        "/proposals/{id}/reject": {
            "post": {
                "tags": ["Proposals"],
                "summary": "Reject a shift proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/RejectProposalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/proposals/{id}/alternative": {
            "post": {
                "tags": ["Proposals"],
                "summary": "Counter a shift proposal with an alternative",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AlternativeProposalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/swaps": {
            "get": {
                "tags": ["Swaps"],
                "summary": "List every swap proposal",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Swaps"],
                "summary": "Submit a swap proposal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSwapProposalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Caller not assigned to offered shift"}
                }
            }
        },
        "/swaps/mine": {
            "get": {
                "tags": ["Swaps"],
                "summary": "List the caller's swap proposals",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/swaps/{id}": {
            "get": {
                "tags": ["Swaps"],
                "summary": "Get a swap proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/swaps/{id}/accept": {
            "post": {
                "tags": ["Swaps"],
                "summary": "Accept a swap proposal and execute the exchange",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AcceptSwapRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Counterparty assignment not found"},
                    "409": {"description": "Schedule conflict"},
                    "422": {"description": "Integrity or state violation"}
                }
            }
        },
        "/swaps/{id}/decline": {
            "post": {
                "tags": ["Swaps"],
                "summary": "Decline a swap proposal",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/DeclineSwapRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateShiftRequest": {
            "type": "object",
            "required": ["title", "startTime", "endTime", "ownerId"],
            "properties": {
                "title": {"type": "string"},
                "startTime": {"type": "string", "format": "date-time"},
                "endTime": {"type": "string", "format": "date-time"},
                "ownerId": {"type": "string"}
            }
        },
        "UpdateShiftRequest": {
            "type": "object",
            "required": ["title", "startTime", "endTime"],
            "properties": {
                "title": {"type": "string"},
                "startTime": {"type": "string", "format": "date-time"},
                "endTime": {"type": "string", "format": "date-time"}
            }
        },
        "AssignShiftRequest": {
            "type": "object",
            "required": ["employeeId", "shiftId"],
            "properties": {
                "employeeId": {"type": "string"},
                "shiftId": {"type": "string"}
            }
        },
        "CreateShiftProposalRequest": {
            "type": "object",
            "required": ["proposedTitle", "proposedStartTime", "proposedEndTime"],
            "properties": {
                "proposedTitle": {"type": "string"},
                "proposedStartTime": {"type": "string", "format": "date-time"},
                "proposedEndTime": {"type": "string", "format": "date-time"}
            }
        },
        "UpdateShiftProposalRequest": {
            "type": "object",
            "required": ["proposedTitle", "proposedStartTime", "proposedEndTime"],
            "properties": {
                "proposedTitle": {"type": "string"},
                "proposedStartTime": {"type": "string", "format": "date-time"},
                "proposedEndTime": {"type": "string", "format": "date-time"}
            }
        },
        "RejectProposalRequest": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"}
            }
        },
        "AlternativeProposalRequest": {
            "type": "object",
            "required": ["title", "startTime", "endTime"],
            "properties": {
                "title": {"type": "string"},
                "startTime": {"type": "string", "format": "date-time"},
                "endTime": {"type": "string", "format": "date-time"},
                "comment": {"type": "string"}
            }
        },
        "CreateSwapProposalRequest": {
            "type": "object",
            "required": ["currentShiftId", "proposedTitle", "proposedStartTime", "proposedEndTime"],
            "properties": {
                "currentShiftId": {"type": "string"},
                "proposedTitle": {"type": "string"},
                "proposedStartTime": {"type": "string", "format": "date-time"},
                "proposedEndTime": {"type": "string", "format": "date-time"}
            }
        },
        "AcceptSwapRequest": {
            "type": "object",
            "required": ["swapEmployeeId"],
            "properties": {
                "swapEmployeeId": {"type": "string"},
                "targetShiftId": {"type": "string"}
            }
        },
        "DeclineSwapRequest": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
