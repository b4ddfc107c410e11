// Package docs holds the OpenAPI document served at /swagger/*. It follows
// the handler annotations; regenerate with: swag init -g cmd/qcportal/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/register": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "User registration details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.registerRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.User"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.loginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.tokenResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Current user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.User"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/users/{id}/access": {
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "users"
                ],
                "summary": "Update user access",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New role and/or active flag",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.updateAccessRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.User"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/api/tests": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tests"
                ],
                "summary": "List test records",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Case-insensitive substring",
                        "name": "batch_number",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Case-insensitive substring",
                        "name": "product_name",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Exact match",
                        "name": "test_type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Pass, Fail or Pending Review",
                        "name": "pass_fail_status",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Inclusive, YYYY-MM-DD",
                        "name": "date_from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Inclusive, YYYY-MM-DD",
                        "name": "date_to",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_TestRecord"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tests"
                ],
                "summary": "Create a test record",
                "parameters": [
                    {
                        "description": "Test record",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createTestRecordRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.TestRecord"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/api/tests/search": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tests"
                ],
                "summary": "Search test records",
                "parameters": [
                    {
                        "description": "Conjunctive filters",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.TestRecordFilter"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_TestRecord"
                        }
                    }
                }
            }
        },
        "/api/tests/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tests"
                ],
                "summary": "Get a test record",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Test record id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.TestRecord"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tests"
                ],
                "summary": "Update a test record",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Test record id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Expected record version",
                        "name": "If-Match",
                        "in": "header"
                    },
                    {
                        "description": "Fields to change",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/domain.TestRecordPatch"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.TestRecord"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/api/tests/{id}/sign": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "tests"
                ],
                "summary": "Electronically sign a test record",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Test record id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Signer credential and meaning",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.signRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.signResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/analytics/dashboard": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analytics"
                ],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ports.Dashboard"
                        }
                    }
                }
            }
        },
        "/api/audit-logs": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Newest first. Restricted to Admin, QC Manager and Auditor.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "audit"
                ],
                "summary": "Read the audit trail",
                "parameters": [
                    {
                        "type": "string",
                        "description": "test, batch, specification, equipment or user",
                        "name": "entity_type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Entity id",
                        "name": "entity_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Acting username",
                        "name": "username",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "CREATE, UPDATE, SIGN or REGISTER",
                        "name": "action",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "At most 1000",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_AuditEntry"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/batches": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "batches"
                ],
                "summary": "List batches",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Batch"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "batches"
                ],
                "summary": "Create a batch",
                "parameters": [
                    {
                        "description": "Batch",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createBatchRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Batch"
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/api/batches/{id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "batches"
                ],
                "summary": "Get a batch",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Batch id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Batch"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/specifications": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "specifications"
                ],
                "summary": "List specifications",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Specification"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "specifications"
                ],
                "summary": "Create a specification",
                "parameters": [
                    {
                        "description": "Specification limits",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createSpecificationRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Specification"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/equipment": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "equipment"
                ],
                "summary": "List equipment",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.listResponse-domain_Equipment"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "equipment"
                ],
                "summary": "Register equipment",
                "parameters": [
                    {
                        "description": "Equipment",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createEquipmentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/domain.Equipment"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Readiness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.readinessResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/handler.readinessResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "full_name": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                }
            }
        },
        "domain.Attestation": {
            "type": "object",
            "properties": {
                "signature": {
                    "type": "string"
                },
                "signer_id": {
                    "type": "string"
                },
                "signer_username": {
                    "type": "string"
                },
                "signer_full_name": {
                    "type": "string"
                },
                "meaning": {
                    "type": "string"
                },
                "comments": {
                    "type": "string"
                },
                "signed_at": {
                    "type": "string"
                }
            }
        },
        "domain.TestRecord": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "batch_id": {
                    "type": "string"
                },
                "batch_number": {
                    "type": "string"
                },
                "product_name": {
                    "type": "string"
                },
                "test_type": {
                    "type": "string"
                },
                "test_method": {
                    "type": "string"
                },
                "equipment_used": {
                    "type": "string"
                },
                "test_date": {
                    "type": "string"
                },
                "test_time": {
                    "type": "string"
                },
                "analyst_name": {
                    "type": "string"
                },
                "analyst_id": {
                    "type": "string"
                },
                "result_value": {
                    "type": "string"
                },
                "result_unit": {
                    "type": "string"
                },
                "specification_min": {
                    "type": "string"
                },
                "specification_max": {
                    "type": "string"
                },
                "pass_fail_status": {
                    "type": "string"
                },
                "comments": {
                    "type": "string"
                },
                "deviation_notes": {
                    "type": "string"
                },
                "signature": {
                    "type": "string"
                },
                "signature_date": {
                    "type": "string"
                },
                "signature_meaning": {
                    "type": "string"
                },
                "signature_comments": {
                    "type": "string"
                },
                "reviewed_by": {
                    "type": "string"
                },
                "review_date": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "retest_required": {
                    "type": "boolean"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "version": {
                    "type": "integer"
                },
                "signatures": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/domain.Attestation"
                    }
                }
            }
        },
        "domain.TestRecordPatch": {
            "type": "object",
            "properties": {
                "test_type": {
                    "type": "string"
                },
                "test_method": {
                    "type": "string"
                },
                "equipment_used": {
                    "type": "string"
                },
                "test_date": {
                    "type": "string"
                },
                "test_time": {
                    "type": "string"
                },
                "result_value": {
                    "type": "string"
                },
                "result_unit": {
                    "type": "string"
                },
                "specification_min": {
                    "type": "string"
                },
                "specification_max": {
                    "type": "string"
                },
                "comments": {
                    "type": "string"
                },
                "deviation_notes": {
                    "type": "string"
                },
                "retest_required": {
                    "type": "boolean"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "domain.TestRecordFilter": {
            "type": "object",
            "properties": {
                "batch_number": {
                    "type": "string"
                },
                "product_name": {
                    "type": "string"
                },
                "test_type": {
                    "type": "string"
                },
                "pass_fail_status": {
                    "type": "string"
                },
                "date_from": {
                    "type": "string"
                },
                "date_to": {
                    "type": "string"
                }
            }
        },
        "domain.AuditEntry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "action": {
                    "type": "string"
                },
                "entity_type": {
                    "type": "string"
                },
                "entity_id": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                },
                "username": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "ip_address": {
                    "type": "string"
                },
                "state": {
                    "type": "string"
                },
                "digest": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "domain.Batch": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "batch_number": {
                    "type": "string"
                },
                "product_name": {
                    "type": "string"
                },
                "manufacturing_date": {
                    "type": "string"
                },
                "expiry_date": {
                    "type": "string"
                },
                "batch_size": {
                    "type": "string"
                },
                "batch_quantity": {
                    "type": "string"
                },
                "manufacturing_location": {
                    "type": "string"
                },
                "created_by": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "domain.Specification": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "product_name": {
                    "type": "string"
                },
                "test_type": {
                    "type": "string"
                },
                "min_limit": {
                    "type": "string"
                },
                "max_limit": {
                    "type": "string"
                },
                "unit": {
                    "type": "string"
                },
                "method_reference": {
                    "type": "string"
                }
            }
        },
        "domain.Equipment": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "equipment_name": {
                    "type": "string"
                },
                "equipment_id": {
                    "type": "string"
                },
                "calibration_status": {
                    "type": "string"
                },
                "last_calibration_date": {
                    "type": "string"
                },
                "next_calibration_date": {
                    "type": "string"
                }
            }
        },
        "ports.ProductStats": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "pass": {
                    "type": "integer"
                },
                "fail": {
                    "type": "integer"
                }
            }
        },
        "ports.Dashboard": {
            "type": "object",
            "properties": {
                "total_tests": {
                    "type": "integer"
                },
                "pass_tests": {
                    "type": "integer"
                },
                "fail_tests": {
                    "type": "integer"
                },
                "pending_tests": {
                    "type": "integer"
                },
                "pass_rate": {
                    "type": "number"
                },
                "test_types_distribution": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "recent_tests_count": {
                    "type": "integer"
                },
                "product_statistics": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/ports.ProductStats"
                    }
                }
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "full_name": {
                    "type": "string"
                },
                "password": {
                    "type": "string",
                    "minLength": 8
                }
            },
            "required": [
                "email",
                "full_name",
                "password",
                "role",
                "username"
            ]
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "password",
                "username"
            ]
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {
                    "type": "string"
                },
                "token_type": {
                    "type": "string"
                },
                "expires_at": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/domain.User"
                }
            }
        },
        "handler.updateAccessRequest": {
            "type": "object",
            "properties": {
                "role": {
                    "type": "string"
                },
                "is_active": {
                    "type": "boolean"
                }
            }
        },
        "handler.createTestRecordRequest": {
            "type": "object",
            "properties": {
                "batch_id": {
                    "type": "string"
                },
                "batch_number": {
                    "type": "string"
                },
                "product_name": {
                    "type": "string"
                },
                "test_type": {
                    "type": "string"
                },
                "test_method": {
                    "type": "string"
                },
                "equipment_used": {
                    "type": "string"
                },
                "test_date": {
                    "type": "string"
                },
                "test_time": {
                    "type": "string"
                },
                "result_value": {
                    "type": "string"
                },
                "result_unit": {
                    "type": "string"
                },
                "specification_min": {
                    "type": "string"
                },
                "specification_max": {
                    "type": "string"
                },
                "comments": {
                    "type": "string"
                },
                "deviation_notes": {
                    "type": "string"
                },
                "retest_required": {
                    "type": "boolean"
                },
                "attachments": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "handler.signRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "meaning": {
                    "type": "string"
                },
                "comments": {
                    "type": "string"
                },
                "expected_version": {
                    "type": "integer",
                    "minimum": 1
                }
            },
            "required": [
                "meaning",
                "password",
                "username"
            ]
        },
        "handler.signResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "audit_id": {
                    "type": "string"
                },
                "signed_at": {
                    "type": "string"
                },
                "test_id": {
                    "type": "string"
                },
                "reviewed_by": {
                    "type": "string"
                },
                "pass_fail_status": {
                    "type": "string"
                },
                "signature": {
                    "$ref": "#/definitions/domain.Attestation"
                },
                "version": {
                    "type": "integer"
                },
                "signature_count": {
                    "type": "integer"
                }
            }
        },
        "handler.createBatchRequest": {
            "type": "object",
            "properties": {
                "batch_number": {
                    "type": "string"
                },
                "product_name": {
                    "type": "string"
                },
                "manufacturing_date": {
                    "type": "string"
                },
                "expiry_date": {
                    "type": "string"
                },
                "batch_size": {
                    "type": "string"
                },
                "batch_quantity": {
                    "type": "string"
                },
                "manufacturing_location": {
                    "type": "string"
                }
            }
        },
        "handler.createSpecificationRequest": {
            "type": "object",
            "properties": {
                "product_name": {
                    "type": "string"
                },
                "test_type": {
                    "type": "string"
                },
                "min_limit": {
                    "type": "string"
                },
                "max_limit": {
                    "type": "string"
                },
                "unit": {
                    "type": "string"
                },
                "method_reference": {
                    "type": "string"
                }
            }
        },
        "handler.createEquipmentRequest": {
            "type": "object",
            "properties": {
                "equipment_name": {
                    "type": "string"
                },
                "equipment_id": {
                    "type": "string"
                },
                "calibration_status": {
                    "type": "string"
                },
                "last_calibration_date": {
                    "type": "string"
                },
                "next_calibration_date": {
                    "type": "string"
                }
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/handler.dependencyStatus"
                    }
                }
            }
        },
        "handler.listResponse-domain_TestRecord": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.TestRecord"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_AuditEntry": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.AuditEntry"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Batch": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Batch"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Specification": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Specification"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "handler.listResponse-domain_Equipment": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.Equipment"
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "QC Record Portal API",
	Description:      "Pharmaceutical quality-control test records with electronic signatures and an append-only audit trail.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
