package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "UniFlow API",
        "description": "Personal academic tracker: attendance, routine, syllabus, holidays",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "External-identity sign in and session"},
        {"name": "State", "description": "Whole-document state operations"},
        {"name": "Dashboard", "description": "Composed home-screen summary"},
        {"name": "Subjects", "description": "Subjects and syllabus topics"},
        {"name": "Attendance", "description": "Per-subject attendance logs"},
        {"name": "Holidays", "description": "Holiday planning"},
        {"name": "Routine", "description": "Weekly class routine"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in with an externally-verified identity profile",
                "responses": {"200": {"description": "Session token and stored profile"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign out; tracked data stays on the device",
                "responses": {"204": {"description": "Signed out"}}
            }
        },
        "/state": {
            "get": {
                "tags": ["State"],
                "summary": "Full application state snapshot",
                "responses": {"200": {"description": "AppState document"}}
            },
            "delete": {
                "tags": ["State"],
                "summary": "Clear the stored document and return to the seed state",
                "responses": {"200": {"description": "Seed state"}}
            }
        },
        "/state/target": {
            "put": {
                "tags": ["State"],
                "summary": "Update the attendance target percentage (clamped to 0..100)",
                "responses": {"200": {"description": "New target"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Attendance, syllabus completion, below-target alerts, today's schedule",
                "responses": {"200": {"description": "Dashboard summary"}}
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "responses": {"200": {"description": "Subjects"}}
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Add a subject",
                "responses": {"201": {"description": "Updated subjects"}}
            }
        },
        "/subjects/{id}": {
            "put": {
                "tags": ["Subjects"],
                "summary": "Replace a subject record wholesale",
                "responses": {"200": {"description": "Updated subjects"}}
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete a subject and its owned records",
                "responses": {"200": {"description": "Updated subjects"}}
            }
        },
        "/subjects/{id}/syllabus": {
            "post": {
                "tags": ["Subjects"],
                "summary": "Append a syllabus topic",
                "responses": {"201": {"description": "Updated subject"}}
            }
        },
        "/subjects/{id}/syllabus/{itemId}": {
            "patch": {
                "tags": ["Subjects"],
                "summary": "Toggle a topic's completion flag",
                "responses": {"200": {"description": "Updated subject"}}
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Remove a syllabus topic",
                "responses": {"200": {"description": "Updated subject"}}
            }
        },
        "/subjects/{id}/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance log with derived stats",
                "responses": {"200": {"description": "Subject detail"}}
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Log a dated class",
                "responses": {"201": {"description": "Subject detail"}}
            }
        },
        "/subjects/{id}/attendance/{recordId}": {
            "delete": {
                "tags": ["Attendance"],
                "summary": "Remove one attendance record",
                "responses": {"200": {"description": "Subject detail"}}
            }
        },
        "/holidays": {
            "get": {
                "tags": ["Holidays"],
                "summary": "List holidays, date-sorted",
                "responses": {"200": {"description": "Holidays"}}
            },
            "post": {
                "tags": ["Holidays"],
                "summary": "Add a holiday",
                "responses": {"201": {"description": "Updated holidays"}}
            }
        },
        "/holidays/{id}": {
            "delete": {
                "tags": ["Holidays"],
                "summary": "Remove a holiday",
                "responses": {"200": {"description": "Updated holidays"}}
            }
        },
        "/routine": {
            "get": {
                "tags": ["Routine"],
                "summary": "Routine entries, optionally resolved for one day",
                "responses": {"200": {"description": "Routine"}}
            },
            "post": {
                "tags": ["Routine"],
                "summary": "Add a weekly class occurrence",
                "responses": {"201": {"description": "Updated routine"}}
            }
        },
        "/routine/today": {
            "get": {
                "tags": ["Routine"],
                "summary": "Today's schedule, time-sorted",
                "responses": {"200": {"description": "Schedule"}}
            }
        },
        "/routine/{id}": {
            "delete": {
                "tags": ["Routine"],
                "summary": "Remove a routine entry",
                "responses": {"200": {"description": "Updated routine"}}
            }
        },
        "/users/me": {
            "put": {
                "tags": ["Auth"],
                "summary": "Replace the signed-in profile",
                "responses": {"200": {"description": "Updated profile"}}
            }
        }
    },
    "definitions": {
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
