package letters

// Template is one catalog entry: a parameterized body plus the metadata the
// composer needs to address and validate it. Tokens lists every placeholder
// the body uses; composition fails rather than ship an unresolved token.
type Template struct {
	Key          TemplateKey
	Subject      string
	Body         string
	Tokens       []string
	CitedSection string
	Recipient    RecipientClass
}

// initialTemplates differentiate by dispute type. Unknown types fall back to
// the generic "other" entry.
var initialTemplates = map[DisputeType]Template{
	DisputeNotMine: {
		Key:          TemplateKey{DisputeNotMine, StageInitial},
		Subject:      "Dispute - Account Not Mine",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to formally dispute the following item(s) on my credit report:

Account Name: {accountName}
Account Number: {accountNumber}

This account does not belong to me. I have never opened an account with this creditor, nor have I authorized anyone to open an account on my behalf. This appears to be an error or possible case of identity theft.

I am requesting that you investigate this matter and remove this inaccurate information from my credit report immediately. Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Please provide me with written confirmation of the removal of this item from my credit report.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Copy of ID, Proof of Address`,
	},
	DisputePaidInFull: {
		Key:          TemplateKey{DisputePaidInFull, StageInitial},
		Subject:      "Dispute - Account Paid in Full",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute the following account on my credit report:

Account Name: {accountName}
Account Number: {accountNumber}

This account shows an outstanding balance, however, it has been paid in full. I have fulfilled all payment obligations for this account and it should reflect a zero balance or be removed from my credit report.

I am requesting that you investigate this matter and update my credit report to accurately reflect the paid status of this account.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Payment records, Account statements`,
	},
	DisputeIncorrectAmount: {
		Key:          TemplateKey{DisputeIncorrectAmount, StageInitial},
		Subject:      "Dispute - Incorrect Balance Amount",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute the balance amount reported for the following account:

Account Name: {accountName}
Account Number: {accountNumber}

The balance amount currently reported is inaccurate. The correct balance should be different from what is currently showing on my credit report.

I am requesting that you investigate this matter and correct the balance amount to accurately reflect the true status of this account.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Account statements, Payment records`,
	},
	DisputeIncorrectDate: {
		Key:          TemplateKey{DisputeIncorrectDate, StageInitial},
		Subject:      "Dispute - Incorrect Date Information",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute the date information for the following account:

Account Name: {accountName}
Account Number: {accountNumber}

The dates associated with this account (opening date, last payment date, or delinquency dates) are inaccurate and do not reflect the true timeline of this account.

I am requesting that you investigate this matter and correct the date information to accurately reflect the actual account history.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Account documentation, Payment history`,
	},
	DisputeDuplicate: {
		Key:          TemplateKey{DisputeDuplicate, StageInitial},
		Subject:      "Dispute - Duplicate Account Listing",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute a duplicate listing on my credit report:

Account Name: {accountName}
Account Number: {accountNumber}

This account appears to be listed multiple times on my credit report, which is inaccurate and negatively impacts my credit score. There should only be one listing for this account.

I am requesting that you investigate this matter and remove the duplicate listing(s) from my credit report.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Credit report highlighting duplicates`,
	},
	DisputeIdentityTheft: {
		Key:          TemplateKey{DisputeIdentityTheft, StageInitial},
		Subject:      "Dispute - Identity Theft",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute the following fraudulent account on my credit report:

Account Name: {accountName}
Account Number: {accountNumber}

This account was opened as a result of identity theft. I have never opened this account, nor have I authorized anyone to open an account on my behalf. I am a victim of identity theft and this fraudulent account should be removed immediately.

I have filed a police report and an FTC Identity Theft Report regarding this matter. I am requesting that you investigate this dispute and remove this fraudulent account from my credit report.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Police report, FTC Identity Theft Report, Copy of ID`,
	},
	DisputeMixedFile: {
		Key:          TemplateKey{DisputeMixedFile, StageInitial},
		Subject:      "Dispute - Mixed Credit File",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute the following account that appears to belong to another person:

Account Name: {accountName}
Account Number: {accountNumber}

This account does not belong to me and appears to be the result of a mixed credit file. The account information does not match my personal information, credit history, or financial records.

I am requesting that you investigate this matter and remove this account from my credit report as it belongs to another individual.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Copy of ID, Proof of Address`,
	},
	DisputeOutdated: {
		Key:          TemplateKey{DisputeOutdated, StageInitial},
		Subject:      "Dispute - Outdated Information",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute the following outdated account on my credit report:

Account Name: {accountName}
Account Number: {accountNumber}

This account information is outdated and should be removed from my credit report. According to the Fair Credit Reporting Act, most negative information should be removed after 7 years, and this account exceeds that timeframe.

I am requesting that you investigate this matter and remove this outdated information from my credit report.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Account timeline documentation`,
	},
	DisputeOther: {
		Key:          TemplateKey{DisputeOther, StageInitial},
		Subject:      "Credit Report Dispute",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "disputeReason", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to dispute the following account on my credit report:

Account Name: {accountName}
Account Number: {accountNumber}

Reason for dispute: {disputeReason}

I am requesting that you investigate this matter and take appropriate action to correct my credit report.

Under the Fair Credit Reporting Act (FCRA), you have 30 days to investigate and respond to this dispute.

Sincerely,
{clientName}
{clientAddress}

Enclosures: Supporting documentation`,
	},
}

// stageTemplates are shared across dispute types for non-initial stages.
var stageTemplates = map[Stage]Template{
	StageFollowUp: {
		Key:          TemplateKey{Stage: StageFollowUp},
		Subject:      "Dispute Follow-Up",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "originalDate", "daysSinceDispute", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

I am writing to follow up on my previous dispute submitted on {originalDate} regarding:

Account Name: {accountName}
Account Number: {accountNumber}

It has been {daysSinceDispute} days since I submitted my dispute, and I have not received a response. Under the Fair Credit Reporting Act (FCRA), you are required to investigate and respond to disputes within 30 days.

I am requesting an immediate update on the status of my dispute and prompt resolution of this matter.

If this account cannot be verified as accurate, it must be removed from my credit report immediately.

Sincerely,
{clientName}
{clientAddress}

Reference: Original dispute dated {originalDate}`,
	},
	StageFurnisher: {
		Key:          TemplateKey{Stage: StageFurnisher},
		Subject:      "Direct Dispute Under FCRA Section 623(a)(8)",
		CitedSection: "FCRA 623(a)(8)",
		Recipient:    RecipientFurnisher,
		Tokens:       []string{"furnisherName", "accountNumber", "clientName", "lastFourSSN", "clientAddress", "disputeReason"},
		Body: `Dear {furnisherName} Compliance Department,

Re: Direct Dispute Under FCRA Section 623(a)(8)
Account Number: {accountNumber}
Consumer: {clientName}
SSN: XXX-XX-{lastFourSSN}
Address: {clientAddress}

I am disputing inaccurate information you are furnishing to consumer reporting agencies under FCRA Section 623(a)(8).

Specific inaccuracies:
{disputeReason}

Under FCRA Section 623(a)(8)(D), you are required to:
1. Conduct a reasonable investigation of the disputed information
2. Review all relevant information provided by me
3. Report the results of the investigation to all consumer reporting agencies
4. Modify, delete, or permanently block reporting of inaccurate information

FCRA Section 623(a)(1)(A) requires you to provide accurate and complete information. The current reporting violates this requirement.

Please respond within 30 days as required by FCRA Section 623(a)(8)(E).

Sincerely,
{clientName}

Enclosures: Supporting Documentation`,
	},
	StageVerification: {
		Key:          TemplateKey{Stage: StageVerification},
		Subject:      "Method of Verification Request",
		CitedSection: "FCRA 611(a)(7)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "clientName", "lastFourSSN", "clientAddress", "accountName", "originalDate"},
		Body: `Dear {bureau} Compliance Department,

Re: Method of Verification Request
Consumer: {clientName}
SSN: XXX-XX-{lastFourSSN}
Address: {clientAddress}

Pursuant to FCRA Section 611(a)(7), I am requesting disclosure of the method of verification used in your recent reinvestigation of my dispute concerning:

Account Name: {accountName}
Date of Dispute: {originalDate}

I am specifically requesting:
1. The method of verification used to confirm the accuracy of the disputed information
2. The name and business address of any furnisher contacted
3. The specific procedures followed during the reinvestigation
4. Any documentation received from the furnisher

FCRA Section 611(a)(7) requires you to provide this information within 15 days of my request. Please provide a detailed explanation of your verification process.

Sincerely,
{clientName}`,
	},
	StageEscalation: {
		Key:          TemplateKey{Stage: StageEscalation},
		Subject:      "Dispute Escalation",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "originalDate", "followUpDate", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau Manager,

I am writing to escalate my dispute regarding the following account:

Account Name: {accountName}
Account Number: {accountNumber}

Despite my previous correspondence dated {originalDate} and follow-up dated {followUpDate}, this matter remains unresolved. This is unacceptable and may constitute a violation of the Fair Credit Reporting Act (FCRA).

I am demanding immediate action to resolve this dispute. If this account cannot be properly verified, it must be removed from my credit report immediately.

Failure to resolve this matter promptly may result in formal complaints being filed with the Consumer Financial Protection Bureau (CFPB) and my state's Attorney General's office.

I expect a written response within 10 business days.

Sincerely,
{clientName}
{clientAddress}

Reference: Original dispute dated {originalDate}
Reference: Follow-up dated {followUpDate}`,
	},
	StageFinal: {
		Key:          TemplateKey{Stage: StageFinal},
		Subject:      "Final Notice Before Formal Complaint",
		CitedSection: "FCRA 611(a)(1)(A)",
		Recipient:    RecipientBureau,
		Tokens:       []string{"bureau", "accountName", "accountNumber", "originalDate", "followUpDate", "escalationDate", "clientName", "clientAddress"},
		Body: `Dear {bureau} Credit Bureau,

This is my final attempt to resolve the dispute regarding:

Account Name: {accountName}
Account Number: {accountNumber}

Despite multiple attempts to resolve this matter (original dispute: {originalDate}, follow-up: {followUpDate}, escalation: {escalationDate}), you have failed to properly investigate and resolve this dispute.

This letter serves as notice that I will be filing formal complaints with:
- Consumer Financial Protection Bureau (CFPB)
- Federal Trade Commission (FTC)
- State Attorney General's Office

Additionally, I may pursue legal action for violations of the Fair Credit Reporting Act (FCRA), which provides for actual damages, punitive damages, and attorney's fees.

You have 10 business days to resolve this matter before I proceed with formal complaints and potential legal action.

Sincerely,
{clientName}
{clientAddress}

Reference: Original dispute dated {originalDate}
Reference: Follow-up dated {followUpDate}
Reference: Escalation dated {escalationDate}`,
	},
}

// Lookup resolves a template key. At the initial stage an unknown dispute
// type falls back to the generic template; later stages share one template
// per stage. A stage with no catalog entry is a lookup failure, never a
// silent substitution.
func Lookup(key TemplateKey) (Template, error) {
	if key.Stage == StageInitial {
		if t, ok := initialTemplates[key.DisputeType]; ok {
			return t, nil
		}
		t := initialTemplates[DisputeOther]
		t.Key.DisputeType = key.DisputeType
		return t, nil
	}
	if t, ok := stageTemplates[key.Stage]; ok {
		t.Key.DisputeType = key.DisputeType
		return t, nil
	}
	return Template{}, ErrTemplateNotFound
}

// Templates lists the catalog for browsing/preview surfaces.
func Templates() []Template {
	out := make([]Template, 0, len(initialTemplates)+len(stageTemplates))
	for _, dt := range []DisputeType{
		DisputeNotMine, DisputePaidInFull, DisputeIncorrectAmount,
		DisputeIncorrectDate, DisputeDuplicate, DisputeIdentityTheft,
		DisputeMixedFile, DisputeOutdated, DisputeOther,
	} {
		out = append(out, initialTemplates[dt])
	}
	for _, st := range []Stage{StageFollowUp, StageFurnisher, StageVerification, StageEscalation, StageFinal} {
		out = append(out, stageTemplates[st])
	}
	return out
}
