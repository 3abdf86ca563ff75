package mcpserver

// EntryFormatContract describes the canonical daily note layout that
// LLM consumers should follow when appending entries.
const EntryFormatContract = `# Haru Daily Note Format Contract

Every daily note stored in Haru follows this structure. Entries are ALWAYS
appended through the append_entry tool; never write note files directly.

## Structure

` + "```" + `markdown
---
날짜: 2025-01-15                    # note date, YYYY-MM-DD
tags:                               # YAML list; "daily" is always first
  - daily
  - 회의
---

# 2025-01-15 (수요일)

## 메모

- 점심에 팀 회의 *(12:30)*
- 배포 완료 *(15:02)*
  - ![[attachments/deploy-log.png]]

## 오늘할일

- [ ] 보고서 작성 [priority::높음] [due::2025-01-16]
- [x] 코드 리뷰

## 오늘 회고

- 집중이 잘 된 하루 *(21:10)*
` + "```" + `

## Rules

1. **Dates** use ` + "`" + `YYYY-MM-DD` + "`" + ` and must be real calendar dates.
2. **Sections** are ` + "`" + `## ` + "`" + ` headings. The retrospective section
   (` + "`" + `오늘 회고` + "`" + ` by default) always stays last; new sections are inserted
   above it.
3. **Plain entries** are bullet lines with a trailing timestamp:
   ` + "`" + `- text *(HH:MM)*` + "`" + `.
4. **Todo entries** (todo section only) use checkboxes:
   ` + "`" + `- [ ] text` + "`" + ` / ` + "`" + `- [x] text` + "`" + `, with optional
   ` + "`" + `[priority::VALUE]` + "`" + ` and ` + "`" + `[due::YYYY-MM-DD]` + "`" + ` metadata tokens.
5. **Tags** live in frontmatter as a YAML list; appends merge new tags in,
   never duplicating or reordering existing ones.
6. **Attachments** are indented sub-items under the entry they belong to,
   using wiki embeds: ` + "`" + `  - ![[attachments/filename]]` + "`" + `. Upload files
   via the upload_attachment tool first; it returns the embed line.
7. **Encoding** is UTF-8. Body content is typically Korean but any language
   is fine.
`
