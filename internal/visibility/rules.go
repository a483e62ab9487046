package visibility

import id "talentnet/pkg/domain"

// Evaluate decides which field groups of target the viewer may see.
// This is pure domain logic - no I/O, no side effects.
//
// Rule precedence (first match wins):
//  1. Owner sees everything
//  2. Admin sees everything, including names of anonymous profiles
//  3. Another professional gets full redaction
//  4. Employer or agency: network access plus a prior application lifts all
//     redaction; network access alone hides contact and media and honours the
//     candidate's anonymity preference; no network access is full redaction
//  5. Anyone else gets full redaction
//
// Ownership is taken from viewer.IsOwnerOfTarget (see Viewer.For). Facts that
// do not belong to this viewer and target count as false.
func Evaluate(viewer Viewer, target *TargetProfile, access NetworkAccessFact, rel RelationshipFact) RedactionDecision {
	// Rule 1: owner
	if viewer.IsOwnerOfTarget {
		return RedactionDecision{Rule: RuleOwner}
	}
	if target == nil {
		return fullRedaction(RuleAnonymous, nil)
	}

	switch viewer.Role {
	// Rule 2: administrative override
	case id.RoleAdmin:
		if viewer.ID.IsNil() {
			break
		}
		return RedactionDecision{Rule: RuleAdmin}

	// Rule 3: professionals never see each other's private data
	case id.RoleProfessional:
		return fullRedaction(RuleProfessional, target)

	// Rule 4: hiring roles
	case id.RoleEmployer, id.RoleAgency:
		if viewer.ID.IsNil() {
			break
		}
		hasAccess := access.HasNetworkAccess && access.EmployerID == viewer.ID
		hasApplied := rel.HasApplied && rel.EmployerID == viewer.ID && rel.CandidateID == target.UserID

		switch {
		case hasAccess && hasApplied:
			return RedactionDecision{Rule: RuleNetworkApplied}
		case hasAccess:
			d := RedactionDecision{
				RedactContact: true,
				RedactMedia:   true,
				AnonymizeName: target.IsAnonymous,
				Rule:          RuleNetworkBrowse,
			}
			if d.AnonymizeName {
				d.InitialsMode = SelectInitialsMode(target.FirstName, target.LastName, target.CustomInitials)
			}
			return d
		default:
			return fullRedaction(RuleNoNetworkAccess, target)
		}
	}

	// Rule 5: anonymous or unrecognised viewers
	return fullRedaction(RuleAnonymous, target)
}

func fullRedaction(rule Rule, target *TargetProfile) RedactionDecision {
	mode := InitialsAnonymous
	if target != nil {
		mode = SelectInitialsMode(target.FirstName, target.LastName, target.CustomInitials)
	}
	return RedactionDecision{
		RedactContact: true,
		RedactMedia:   true,
		AnonymizeName: true,
		InitialsMode:  mode,
		Rule:          rule,
	}
}
