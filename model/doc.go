// Package model defines the minimal chat-model abstraction the chatbot
// demo drives.
//
// A Request carries an instruction plus the conversation so far; Generate
// returns one completed assistant turn. There is no streaming and no
// native tool-call surface: the chatbot's tool protocol is embedded in
// the instruction text, so plain text completions are all it needs.
//
// Providers (model/openai, model/anthropic) implement the Model interface
// so the chat agent stays decoupled from vendor SDKs. ScriptedModel is
// the in-memory implementation for tests and offline demos.
package model
