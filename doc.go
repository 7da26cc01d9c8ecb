// Package finance provides the record-keeping core for a personal stock and
// bank ledger. It is designed to be local-first and auditable, ensuring users
// have full control and transparency over their financial data.
//
// The core functionalities include:
//   - Stock Ledger: Recording buy and sell trades in an append-only,
//     chronological log, and maintaining per-symbol holdings with
//     weighted-average cost, invested capital, and realized profit.
//   - Bank Ledger: Managing labelled accounts with credits, debits, and
//     atomic two-leg transfers between accounts.
//   - Metrics: A stateless valuation engine that combines holdings with
//     caller-supplied prices to report market value and profit figures.
//   - Data Persistence: Handling the encoding and decoding of ledger state
//     and transaction logs to and from human-readable, version-controllable
//     JSONL files, with the logs acting as the single source of truth.
//
// This package serves as the foundational logic for the `sml` command-line
// tool, ensuring that all operations are consistent and replayable.
package finance
